// File: store/contact_ops.go
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kiddushware/logger"
	"kiddushware/models"
)

// CreateContact inserts a manually-entered directory entry. A contact needs
// at least one identifying field or it could never be aggregated.
func (s *Store) CreateContact(c *models.Contact) (string, error) {
	if c.Name == "" && c.Email == "" {
		return "", fmt.Errorf("contact requires a name or an email")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO contacts (id, user_id, name, email, phone, notes, created_at)
		VALUES (:id, :user_id, :name, :email, :phone, :notes, :created_at)`
	if _, err := s.db.NamedExec(query, c); err != nil {
		return "", fmt.Errorf("CreateContact: %w", err)
	}
	logger.Info.Printf("Created contact %s for owner %s", c.ID, c.UserID)
	s.notifier.Publish(Change{Collection: CollectionContacts, OwnerID: c.UserID})
	return c.ID, nil
}

// GetContact fetches one contact by id, scoped to its owner. Another
// owner's id behaves as if the contact does not exist.
func (s *Store) GetContact(id, ownerID string) (*models.Contact, error) {
	c := &models.Contact{}
	err := s.db.Get(c, `SELECT * FROM contacts WHERE id = ? AND user_id = ?`, id, ownerID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetContact %s: %w", id, err)
	}
	return c, nil
}

// ListContacts returns the owner's manually-entered contacts in creation
// order, which is the order aggregation folds them in.
func (s *Store) ListContacts(ownerID string) ([]models.Contact, error) {
	var cs []models.Contact
	err := s.db.Select(&cs, `SELECT * FROM contacts WHERE user_id = ? ORDER BY created_at ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ListContacts: %w", err)
	}
	return cs, nil
}

// UpdateContact rewrites an existing contact's fields.
func (s *Store) UpdateContact(c *models.Contact) error {
	res, err := s.db.NamedExec(
		`UPDATE contacts SET name = :name, email = :email, phone = :phone, notes = :notes
		 WHERE id = :id AND user_id = :user_id`, c)
	if err != nil {
		return fmt.Errorf("UpdateContact %s: %w", c.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.notifier.Publish(Change{Collection: CollectionContacts, OwnerID: c.UserID})
	return nil
}

// DeleteContact removes only the contact row. Sponsorship history is a
// different table and is never touched here.
func (s *Store) DeleteContact(id, ownerID string) error {
	res, err := s.db.Exec(`DELETE FROM contacts WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("DeleteContact %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	logger.Info.Printf("Deleted contact %s (sponsorship history untouched)", id)
	s.notifier.Publish(Change{Collection: CollectionContacts, OwnerID: ownerID})
	return nil
}
