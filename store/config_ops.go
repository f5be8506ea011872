// File: store/config_ops.go
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kiddushware/logger"
	"kiddushware/models"
)

// CreateConfiguration inserts a new display configuration.
func (s *Store) CreateConfiguration(cfg *models.Configuration) (string, error) {
	if cfg.Title == "" {
		return "", fmt.Errorf("configuration requires a title")
	}
	if cfg.Type != models.ConfigTypeCalendar && cfg.Type != models.ConfigTypeForm {
		return "", fmt.Errorf("unknown configuration type %q", cfg.Type)
	}
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO configurations
		(id, user_id, type, title, notification_email, payment_settings, display_settings, created_at)
		VALUES (:id, :user_id, :type, :title, :notification_email, :payment_settings, :display_settings, :created_at)`
	if _, err := s.db.NamedExec(query, cfg); err != nil {
		return "", fmt.Errorf("CreateConfiguration: %w", err)
	}
	logger.Info.Printf("Created configuration %s (%s) for owner %s", cfg.ID, cfg.Type, cfg.UserID)
	s.notifier.Publish(Change{Collection: CollectionConfigurations, OwnerID: cfg.UserID})
	return cfg.ID, nil
}

// GetConfiguration fetches one configuration by id. Public display lookup
// goes through here, so no owner check.
func (s *Store) GetConfiguration(id string) (*models.Configuration, error) {
	cfg := &models.Configuration{}
	err := s.db.Get(cfg, `SELECT * FROM configurations WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetConfiguration %s: %w", id, err)
	}
	return cfg, nil
}

// ListConfigurations returns the owner's configurations, newest first.
func (s *Store) ListConfigurations(ownerID string) ([]models.Configuration, error) {
	var cfgs []models.Configuration
	err := s.db.Select(&cfgs,
		`SELECT * FROM configurations WHERE user_id = ? ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ListConfigurations: %w", err)
	}
	return cfgs, nil
}

// UpdateConfiguration rewrites an existing configuration.
func (s *Store) UpdateConfiguration(cfg *models.Configuration) error {
	res, err := s.db.NamedExec(
		`UPDATE configurations SET type = :type, title = :title,
		 notification_email = :notification_email,
		 payment_settings = :payment_settings, display_settings = :display_settings
		 WHERE id = :id AND user_id = :user_id`, cfg)
	if err != nil {
		return fmt.Errorf("UpdateConfiguration %s: %w", cfg.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.notifier.Publish(Change{Collection: CollectionConfigurations, OwnerID: cfg.UserID})
	return nil
}

// DeleteConfiguration removes a configuration owned by ownerID.
func (s *Store) DeleteConfiguration(id, ownerID string) error {
	res, err := s.db.Exec(`DELETE FROM configurations WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("DeleteConfiguration %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	logger.Info.Printf("Deleted configuration %s", id)
	s.notifier.Publish(Change{Collection: CollectionConfigurations, OwnerID: ownerID})
	return nil
}
