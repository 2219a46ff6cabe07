// Package state durably caches the editable document texts across sessions.
// It is a best-effort convenience: failures are logged and swallowed, never
// surfaced to the editing path.
package state

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/charle01ch/gerador-5-app/internal/db"
)

// Keys under which the two editable texts are persisted. They match the
// storage keys of the original web client so existing data carries over.
const (
	KeyHTML = "appgen-html-code"
	KeyCSS  = "appgen-css-code"
)

// Store is a small key/value layer over the app_state table.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Save writes value under key, overwriting any previous value.
func (s *Store) Save(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// Load returns the value stored under key. The second return value is false
// when the key has never been written.
func (s *Store) Load(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("loading %s: %w", key, err)
	}
	return value, true, nil
}

// Remove deletes the value stored under key. Removing an absent key is not
// an error.
func (s *Store) Remove(key string) error {
	_, err := s.db.Exec(`DELETE FROM app_state WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}
