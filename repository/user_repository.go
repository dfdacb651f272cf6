package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lmt-crm/db"
	"lmt-crm/models"
)

// UserRepository handles database operations for staff accounts
type UserRepository struct{}

// NewUserRepository creates a new UserRepository
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Ensure UserRepository implements UserRepositoryInterface
var _ UserRepositoryInterface = (*UserRepository)(nil)

// FindByEmail returns the user and its password hash. The hash is
// returned out of band so the User struct stays hash-free everywhere
// else.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, string, error) {
	query := `
		SELECT id, name, email, role, hierarchy_level, password_hash
		FROM users
		WHERE email = $1
	`
	var u models.User
	var hash string
	err := db.DB.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.HierarchyLevel, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	return &u, hash, nil
}

// Insert creates a staff account with its password hash.
func (r *UserRepository) Insert(ctx context.Context, user *models.User, passwordHash string) error {
	query := `
		INSERT INTO users (id, name, email, role, hierarchy_level, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := db.DB.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.Role, user.HierarchyLevel, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// List returns all staff accounts ordered by hierarchy, highest first.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, name, email, role, hierarchy_level
		FROM users
		ORDER BY hierarchy_level DESC, name
	`
	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.HierarchyLevel); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
