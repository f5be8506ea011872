// Package store provides SQLite persistence for all record collections.
// File: store/database.go
package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver

	"kiddushware/logger"
)

// Store wraps the database handle together with the change notifier that
// drives live view subscriptions.
type Store struct {
	db       *sqlx.DB
	notifier *Notifier
}

// Open connects to the SQLite database at path (":memory:" in tests),
// applies the schema and returns a ready Store.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", path+"?_foreign_keys=on&_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err = db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info.Printf("Connected to database at %s, schema applied", path)

	return &Store{db: db, notifier: NewNotifier()}, nil
}

// Notifier exposes the store's change notifier so the live package can
// subscribe to mutations.
func (s *Store) Notifier() *Notifier {
	return s.notifier
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
