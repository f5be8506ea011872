// File: store/sponsorship_ops.go
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kiddushware/logger"
	"kiddushware/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// CreateSponsorship inserts a new sponsorship record. ID and SubmittedAt
// are filled in when empty. A record sponsors exactly one slot: the Shabbat
// pair or the custom-event pair, per its type. Returns the assigned id.
func (s *Store) CreateSponsorship(rec *models.SponsorshipRecord) (string, error) {
	switch rec.SponsorshipType {
	case models.TypeShabbat:
		if rec.ShabbatDate == "" || rec.Parsha == "" || rec.CustomSponsorableID != "" || rec.CustomSponsorableTitle != "" {
			return "", fmt.Errorf("shabbat sponsorship requires a shabbat date and parsha and no custom slot")
		}
	case models.TypeCustom:
		if rec.CustomSponsorableID == "" || rec.CustomSponsorableTitle == "" || rec.ShabbatDate != "" || rec.Parsha != "" {
			return "", fmt.Errorf("custom sponsorship requires an event id and title and no shabbat slot")
		}
	default:
		return "", fmt.Errorf("unknown sponsorship type %q", rec.SponsorshipType)
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.SubmittedAt.IsZero() {
		rec.SubmittedAt = time.Now().UTC()
	}

	query := `INSERT INTO sponsorships
		(id, config_owner_id, sponsor_name, occasion, contact_email, status, sponsorship_type,
		 shabbat_date, parsha, custom_sponsorable_id, custom_sponsorable_title,
		 payment_method, kiddush_type, form_title, reserved_by_admin, submitted_at)
		VALUES (:id, :config_owner_id, :sponsor_name, :occasion, :contact_email, :status, :sponsorship_type,
		 :shabbat_date, :parsha, :custom_sponsorable_id, :custom_sponsorable_title,
		 :payment_method, :kiddush_type, :form_title, :reserved_by_admin, :submitted_at)`

	if _, err := s.db.NamedExec(query, rec); err != nil {
		return "", fmt.Errorf("CreateSponsorship: %w", err)
	}
	logger.Info.Printf("Created sponsorship %s (%s, status=%s) for owner %s", rec.ID, rec.SponsorshipType, rec.Status, rec.ConfigOwnerID)
	s.notifier.Publish(Change{Collection: CollectionSponsorships, OwnerID: rec.ConfigOwnerID})
	return rec.ID, nil
}

// GetSponsorship fetches one record by id.
func (s *Store) GetSponsorship(id string) (*models.SponsorshipRecord, error) {
	rec := &models.SponsorshipRecord{}
	err := s.db.Get(rec, `SELECT * FROM sponsorships WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetSponsorship %s: %w", id, err)
	}
	return rec, nil
}

// ListSponsorships returns every record owned by ownerID, submission order.
// Used by the people aggregator, which needs the full history.
func (s *Store) ListSponsorships(ownerID string) ([]models.SponsorshipRecord, error) {
	var recs []models.SponsorshipRecord
	err := s.db.Select(&recs,
		`SELECT * FROM sponsorships WHERE config_owner_id = ? ORDER BY submitted_at ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ListSponsorships: %w", err)
	}
	return recs, nil
}

// ListSponsorshipsByStatus returns the admin worklist for one status,
// newest submission first.
func (s *Store) ListSponsorshipsByStatus(ownerID, status string) ([]models.SponsorshipRecord, error) {
	var recs []models.SponsorshipRecord
	err := s.db.Select(&recs,
		`SELECT * FROM sponsorships WHERE config_owner_id = ? AND status = ? ORDER BY submitted_at DESC`,
		ownerID, status)
	if err != nil {
		return nil, fmt.Errorf("ListSponsorshipsByStatus: %w", err)
	}
	return recs, nil
}

// ListApprovedSponsorships returns approved records in submission order so
// that multiple sponsors of the same slot render in the order they came in.
func (s *Store) ListApprovedSponsorships(ownerID string) ([]models.SponsorshipRecord, error) {
	var recs []models.SponsorshipRecord
	err := s.db.Select(&recs,
		`SELECT * FROM sponsorships WHERE config_owner_id = ? AND status = ? ORDER BY submitted_at ASC`,
		ownerID, models.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("ListApprovedSponsorships: %w", err)
	}
	return recs, nil
}

// UpdateSponsorshipStatus performs a pending -> approved|rejected
// transition. Approved records are never un-approved.
func (s *Store) UpdateSponsorshipStatus(id, newStatus string) error {
	if newStatus != models.StatusApproved && newStatus != models.StatusRejected {
		return fmt.Errorf("invalid status transition target %q", newStatus)
	}
	rec, err := s.GetSponsorship(id)
	if err != nil {
		return err
	}
	if rec.Status != models.StatusPending {
		return fmt.Errorf("sponsorship %s is %s, only pending records can transition", id, rec.Status)
	}

	if _, err := s.db.Exec(`UPDATE sponsorships SET status = ? WHERE id = ?`, newStatus, id); err != nil {
		return fmt.Errorf("UpdateSponsorshipStatus %s: %w", id, err)
	}
	logger.Info.Printf("Sponsorship %s: %s -> %s", id, rec.Status, newStatus)
	s.notifier.Publish(Change{Collection: CollectionSponsorships, OwnerID: rec.ConfigOwnerID})
	return nil
}

// UpdateSponsorshipFields edits the admin-editable fields of a record.
func (s *Store) UpdateSponsorshipFields(id, sponsorName, occasion, contactEmail string) error {
	rec, err := s.GetSponsorship(id)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`UPDATE sponsorships SET sponsor_name = ?, occasion = ?, contact_email = ? WHERE id = ?`,
		sponsorName, occasion, contactEmail, id)
	if err != nil {
		return fmt.Errorf("UpdateSponsorshipFields %s: %w", id, err)
	}
	s.notifier.Publish(Change{Collection: CollectionSponsorships, OwnerID: rec.ConfigOwnerID})
	return nil
}

// DeleteSponsorship removes one record permanently.
func (s *Store) DeleteSponsorship(id string) error {
	rec, err := s.GetSponsorship(id)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM sponsorships WHERE id = ?`, id); err != nil {
		return fmt.Errorf("DeleteSponsorship %s: %w", id, err)
	}
	logger.Info.Printf("Deleted sponsorship %s", id)
	s.notifier.Publish(Change{Collection: CollectionSponsorships, OwnerID: rec.ConfigOwnerID})
	return nil
}
