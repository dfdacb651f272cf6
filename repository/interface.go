package repository

import (
	"context"

	"lmt-crm/models"
)

// LeadRepositoryInterface defines the contract for lead pipeline storage
type LeadRepositoryInterface interface {
	List(ctx context.Context) ([]models.Lead, error)
	GetByID(ctx context.Context, id string) (*models.Lead, error)
	Insert(ctx context.Context, lead *models.Lead) error
	UpdateStatus(ctx context.Context, id string, status models.LeadStatus) error
	Update(ctx context.Context, lead *models.Lead) error
	Delete(ctx context.Context, id string) error
}

// BlueprintRepositoryInterface defines the contract for prebuilt itinerary storage
type BlueprintRepositoryInterface interface {
	List(ctx context.Context) ([]models.Blueprint, error)
	GetByID(ctx context.Context, id string) (*models.Blueprint, error)
	Insert(ctx context.Context, bp *models.Blueprint) error
	Delete(ctx context.Context, id string) error
}

// VehicleRepositoryInterface defines the contract for fleet registry storage
type VehicleRepositoryInterface interface {
	List(ctx context.Context) ([]models.Vehicle, error)
	Insert(ctx context.Context, v *models.Vehicle) error
	UpdateStatus(ctx context.Context, id, status, driver string) error
	Delete(ctx context.Context, id string) error
}

// UserRepositoryInterface defines the contract for staff account storage
type UserRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*models.User, string, error)
	Insert(ctx context.Context, user *models.User, passwordHash string) error
	List(ctx context.Context) ([]models.User, error)
}

// StateRepositoryInterface persists versioned application state blobs
// by key. The content override store writes through it.
type StateRepositoryInterface interface {
	SaveState(ctx context.Context, key string, value []byte) error
	LoadState(ctx context.Context, key string) ([]byte, error)
}
