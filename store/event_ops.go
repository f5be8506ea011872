// File: store/event_ops.go
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kiddushware/logger"
	"kiddushware/models"
)

// CreateCustomEvent inserts a new custom event. Validates the date range
// before touching the database.
func (s *Store) CreateCustomEvent(ev *models.CustomEvent) (string, error) {
	if ev.Title == "" || ev.StartDate == "" || ev.EndDate == "" {
		return "", fmt.Errorf("custom event requires title, start date and end date")
	}
	if ev.EndDate < ev.StartDate {
		return "", fmt.Errorf("custom event end date %s precedes start date %s", ev.EndDate, ev.StartDate)
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO custom_events (id, user_id, title, description, start_date, end_date, created_at)
		VALUES (:id, :user_id, :title, :description, :start_date, :end_date, :created_at)`
	if _, err := s.db.NamedExec(query, ev); err != nil {
		return "", fmt.Errorf("CreateCustomEvent: %w", err)
	}
	logger.Info.Printf("Created custom event %s (%s .. %s) for owner %s", ev.ID, ev.StartDate, ev.EndDate, ev.UserID)
	s.notifier.Publish(Change{Collection: CollectionCustomEvents, OwnerID: ev.UserID})
	return ev.ID, nil
}

// GetCustomEvent fetches one event by id.
func (s *Store) GetCustomEvent(id string) (*models.CustomEvent, error) {
	ev := &models.CustomEvent{}
	err := s.db.Get(ev, `SELECT * FROM custom_events WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetCustomEvent %s: %w", id, err)
	}
	return ev, nil
}

// ListActiveCustomEvents returns the owner's events whose end date has not
// passed. The compound (end_date, start_date) order keeps the range-filtered
// column as the primary sort key.
func (s *Store) ListActiveCustomEvents(ownerID, today string) ([]models.CustomEvent, error) {
	var evs []models.CustomEvent
	err := s.db.Select(&evs,
		`SELECT * FROM custom_events WHERE user_id = ? AND end_date >= ? ORDER BY end_date ASC, start_date ASC`,
		ownerID, today)
	if err != nil {
		return nil, fmt.Errorf("ListActiveCustomEvents: %w", err)
	}
	return evs, nil
}

// ListCustomEvents returns all of the owner's events, soonest-ending first.
func (s *Store) ListCustomEvents(ownerID string) ([]models.CustomEvent, error) {
	var evs []models.CustomEvent
	err := s.db.Select(&evs,
		`SELECT * FROM custom_events WHERE user_id = ? ORDER BY end_date ASC, start_date ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ListCustomEvents: %w", err)
	}
	return evs, nil
}

// UpdateCustomEvent rewrites the editable fields of an event.
func (s *Store) UpdateCustomEvent(ev *models.CustomEvent) error {
	if ev.EndDate < ev.StartDate {
		return fmt.Errorf("custom event end date %s precedes start date %s", ev.EndDate, ev.StartDate)
	}
	res, err := s.db.NamedExec(
		`UPDATE custom_events SET title = :title, description = :description,
		 start_date = :start_date, end_date = :end_date
		 WHERE id = :id AND user_id = :user_id`, ev)
	if err != nil {
		return fmt.Errorf("UpdateCustomEvent %s: %w", ev.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.notifier.Publish(Change{Collection: CollectionCustomEvents, OwnerID: ev.UserID})
	return nil
}

// DeleteCustomEvent removes an event. Sponsorships referencing it keep
// their stored title and simply stop matching a live slot.
func (s *Store) DeleteCustomEvent(id, ownerID string) error {
	res, err := s.db.Exec(`DELETE FROM custom_events WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("DeleteCustomEvent %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	logger.Info.Printf("Deleted custom event %s", id)
	s.notifier.Publish(Change{Collection: CollectionCustomEvents, OwnerID: ownerID})
	return nil
}
