package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"lmt-crm/db"
	"lmt-crm/models"
)

// BlueprintRepository handles database operations for prebuilt
// itineraries. Day sequences are stored as a JSONB column: blueprints
// are read whole or not at all, never queried per day.
type BlueprintRepository struct{}

// NewBlueprintRepository creates a new BlueprintRepository
func NewBlueprintRepository() *BlueprintRepository {
	return &BlueprintRepository{}
}

// Ensure BlueprintRepository implements BlueprintRepositoryInterface
var _ BlueprintRepositoryInterface = (*BlueprintRepository)(nil)

// List returns all blueprints ordered by title.
func (r *BlueprintRepository) List(ctx context.Context) ([]models.Blueprint, error) {
	query := `
		SELECT id, title, destination, description, duration_days, duration_label, days, COALESCE(thumbnail, '')
		FROM blueprints
		ORDER BY title
	`
	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list blueprints: %w", err)
	}
	defer rows.Close()

	var blueprints []models.Blueprint
	for rows.Next() {
		var bp models.Blueprint
		var daysJSON []byte
		if err := rows.Scan(&bp.ID, &bp.Title, &bp.Destination, &bp.Description,
			&bp.DurationDays, &bp.DurationLabel, &daysJSON, &bp.Thumbnail); err != nil {
			return nil, fmt.Errorf("failed to scan blueprint: %w", err)
		}
		if err := json.Unmarshal(daysJSON, &bp.Days); err != nil {
			return nil, fmt.Errorf("failed to decode blueprint days for %s: %w", bp.ID, err)
		}
		blueprints = append(blueprints, bp)
	}
	return blueprints, rows.Err()
}

// GetByID returns one blueprint or ErrNotFound.
func (r *BlueprintRepository) GetByID(ctx context.Context, id string) (*models.Blueprint, error) {
	query := `
		SELECT id, title, destination, description, duration_days, duration_label, days, COALESCE(thumbnail, '')
		FROM blueprints
		WHERE id = $1
	`
	var bp models.Blueprint
	var daysJSON []byte
	err := db.DB.QueryRowContext(ctx, query, id).Scan(&bp.ID, &bp.Title, &bp.Destination,
		&bp.Description, &bp.DurationDays, &bp.DurationLabel, &daysJSON, &bp.Thumbnail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("blueprint %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get blueprint: %w", err)
	}
	if err := json.Unmarshal(daysJSON, &bp.Days); err != nil {
		return nil, fmt.Errorf("failed to decode blueprint days for %s: %w", bp.ID, err)
	}
	return &bp, nil
}

// Insert creates a new blueprint row.
func (r *BlueprintRepository) Insert(ctx context.Context, bp *models.Blueprint) error {
	daysJSON, err := json.Marshal(bp.Days)
	if err != nil {
		return fmt.Errorf("failed to encode blueprint days: %w", err)
	}

	query := `
		INSERT INTO blueprints (id, title, destination, description, duration_days, duration_label, days, thumbnail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = db.DB.ExecContext(ctx, query, bp.ID, bp.Title, bp.Destination, bp.Description,
		bp.DurationDays, bp.DurationLabel, daysJSON, bp.Thumbnail)
	if err != nil {
		return fmt.Errorf("failed to insert blueprint: %w", err)
	}
	return nil
}

// Delete removes a blueprint row.
func (r *BlueprintRepository) Delete(ctx context.Context, id string) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM blueprints WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blueprint: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("blueprint %s: %w", id, ErrNotFound)
	}
	return nil
}
