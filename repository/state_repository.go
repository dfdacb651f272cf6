package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lmt-crm/db"
)

// StateRepository persists versioned application state blobs (content
// overrides, session snapshots) keyed by name. One row per key, always
// upserted whole.
type StateRepository struct{}

// NewStateRepository creates a new StateRepository
func NewStateRepository() *StateRepository {
	return &StateRepository{}
}

// Ensure StateRepository implements StateRepositoryInterface
var _ StateRepositoryInterface = (*StateRepository)(nil)

// SaveState upserts the blob for a key.
func (r *StateRepository) SaveState(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO app_state (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := db.DB.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to save state %s: %w", key, err)
	}
	return nil
}

// LoadState returns the blob for a key, or nil when the key has never
// been written.
func (r *StateRepository) LoadState(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := db.DB.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load state %s: %w", key, err)
	}
	return value, nil
}
