// Package history records completed generations so earlier prompts can be
// offered as quick-fills in the studio.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/charle01ch/gerador-5-app/internal/db"
)

// Record is one completed generation.
type Record struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists generation records.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Add records a completed generation and returns its id.
func (s *Store) Add(ctx context.Context, prompt, model string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generations (id, prompt, model) VALUES (?, ?, ?)`,
		id, prompt, model)
	if err != nil {
		return "", fmt.Errorf("recording generation: %w", err)
	}
	return id, nil
}

// List returns the most recent records, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, prompt, model, created_at FROM generations ORDER BY created_at DESC, id LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("listing generations: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var ts string
		if err := rows.Scan(&r.ID, &r.Prompt, &r.Model, &ts); err != nil {
			return nil, fmt.Errorf("scanning generation: %w", err)
		}
		if t, parseErr := time.Parse(time.DateTime, ts); parseErr == nil {
			r.CreatedAt = t
		} else if t, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
			r.CreatedAt = t
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
