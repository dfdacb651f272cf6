package repository

import (
	"context"
	"fmt"

	"lmt-crm/db"
	"lmt-crm/models"
)

// VehicleRepository handles database operations for the fleet registry
type VehicleRepository struct{}

// NewVehicleRepository creates a new VehicleRepository
func NewVehicleRepository() *VehicleRepository {
	return &VehicleRepository{}
}

// Ensure VehicleRepository implements VehicleRepositoryInterface
var _ VehicleRepositoryInterface = (*VehicleRepository)(nil)

// List returns all fleet vehicles ordered by model.
func (r *VehicleRepository) List(ctx context.Context) ([]models.Vehicle, error) {
	query := `
		SELECT id, model, type, plate_number, status, COALESCE(current_driver, '')
		FROM vehicles
		ORDER BY model
	`
	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.Model, &v.Type, &v.PlateNumber, &v.Status, &v.CurrentDriver); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// Insert creates a new fleet entry.
func (r *VehicleRepository) Insert(ctx context.Context, v *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, model, type, plate_number, status, current_driver)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := db.DB.ExecContext(ctx, query, v.ID, v.Model, v.Type, v.PlateNumber, v.Status, v.CurrentDriver)
	if err != nil {
		return fmt.Errorf("failed to insert vehicle: %w", err)
	}
	return nil
}

// UpdateStatus changes availability and the assigned driver together.
func (r *VehicleRepository) UpdateStatus(ctx context.Context, id, status, driver string) error {
	result, err := db.DB.ExecContext(ctx,
		`UPDATE vehicles SET status = $1, current_driver = $2 WHERE id = $3`, status, driver, id)
	if err != nil {
		return fmt.Errorf("failed to update vehicle status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a fleet entry.
func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
	}
	return nil
}
