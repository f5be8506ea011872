// File: store/user_ops.go
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"kiddushware/logger"
	"kiddushware/models"
)

// CreateUser inserts an admin account. The caller supplies a bcrypt hash,
// never a plaintext password.
func (s *Store) CreateUser(u *models.User) (string, error) {
	if u.Email == "" || u.PasswordHash == "" {
		return "", fmt.Errorf("user requires email and password hash")
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	query := `INSERT INTO users (id, email, password_hash, congregation, created_at)
		VALUES (:id, :email, :password_hash, :congregation, :created_at)`
	if _, err := s.db.NamedExec(query, u); err != nil {
		return "", fmt.Errorf("CreateUser: %w", err)
	}
	logger.Info.Printf("Created user %s (%s)", u.ID, u.Email)
	return u.ID, nil
}

// GetUserByEmail looks an account up for login.
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	u := &models.User{}
	err := s.db.Get(u, `SELECT * FROM users WHERE email = ?`, strings.ToLower(strings.TrimSpace(email)))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

// GetUser fetches an account by id, used to re-validate sessions.
func (s *Store) GetUser(id string) (*models.User, error) {
	u := &models.User{}
	err := s.db.Get(u, `SELECT * FROM users WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetUser %s: %w", id, err)
	}
	return u, nil
}
