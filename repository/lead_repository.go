package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"lmt-crm/db"
	"lmt-crm/models"
)

// ErrNotFound is returned when a row lookup matches nothing.
var ErrNotFound = errors.New("record not found")

// LeadRepository handles database operations for the lead pipeline
type LeadRepository struct{}

// NewLeadRepository creates a new LeadRepository
func NewLeadRepository() *LeadRepository {
	return &LeadRepository{}
}

// Ensure LeadRepository implements LeadRepositoryInterface
var _ LeadRepositoryInterface = (*LeadRepository)(nil)

const leadColumns = `id, name, email, phone, source, status, destination, budget, assigned_agent,
	COALESCE(travel_dates, '') AS travel_dates, COALESCE(notes, '') AS notes, created_at`

// List returns all leads, newest first.
func (r *LeadRepository) List(ctx context.Context) ([]models.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads ORDER BY created_at DESC`, leadColumns)

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		var l models.Lead
		if err := scanLead(rows, &l); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// GetByID returns one lead or ErrNotFound.
func (r *LeadRepository) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE id = $1`, leadColumns)

	var l models.Lead
	row := db.DB.QueryRowContext(ctx, query, id)
	if err := scanLead(row, &l); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lead %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &l, nil
}

// Insert creates a new lead row.
func (r *LeadRepository) Insert(ctx context.Context, lead *models.Lead) error {
	query := `
		INSERT INTO leads (id, name, email, phone, source, status, destination, budget, assigned_agent, travel_dates, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := db.DB.ExecContext(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Source, lead.Status,
		lead.Destination, lead.Budget, lead.AssignedAgent, lead.TravelDates, lead.Notes, lead.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}

	log.Info().Str("lead", lead.ID).Str("name", lead.Name).Msg("✓ lead created")
	return nil
}

// UpdateStatus moves a lead between pipeline columns.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status models.LeadStatus) error {
	result, err := db.DB.ExecContext(ctx, `UPDATE leads SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update lead status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("lead %s: %w", id, ErrNotFound)
	}
	return nil
}

// Update rewrites the editable lead fields.
func (r *LeadRepository) Update(ctx context.Context, lead *models.Lead) error {
	query := `
		UPDATE leads
		SET name = $1, email = $2, phone = $3, source = $4, status = $5,
			destination = $6, budget = $7, assigned_agent = $8, travel_dates = $9, notes = $10
		WHERE id = $11
	`
	result, err := db.DB.ExecContext(ctx, query,
		lead.Name, lead.Email, lead.Phone, lead.Source, lead.Status,
		lead.Destination, lead.Budget, lead.AssignedAgent, lead.TravelDates, lead.Notes, lead.ID)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("lead %s: %w", lead.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a lead row.
func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("lead %s: %w", id, ErrNotFound)
	}
	return nil
}

// scanLead works over both *sql.Row and *sql.Rows.
func scanLead(row interface{ Scan(dest ...any) error }, l *models.Lead) error {
	return row.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Source, &l.Status,
		&l.Destination, &l.Budget, &l.AssignedAgent, &l.TravelDates, &l.Notes, &l.CreatedAt)
}
