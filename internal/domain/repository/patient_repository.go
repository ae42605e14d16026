package repository

import (
	"context"

	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/infrastructure/storage"
)

type PatientRepository interface {
	// Create assigns the next id, stamps CreatedAt and persists the
	// full collection.
	Create(ctx context.Context, store storage.Store, patient *entity.Patient) error
	FindAll(ctx context.Context, store storage.Store) ([]entity.Patient, error)
	// FindByID returns (nil, nil) when no record matches.
	FindByID(ctx context.Context, store storage.Store, id int) (*entity.Patient, error)
	// Update replaces the stored record with the same id, refreshing
	// UpdatedAt. Returns (nil, nil) when no record matches.
	Update(ctx context.Context, store storage.Store, patient *entity.Patient) (*entity.Patient, error)
	// Delete is idempotent: removing an absent id succeeds.
	Delete(ctx context.Context, store storage.Store, id int) error
	Search(ctx context.Context, store storage.Store, query string) ([]entity.Patient, error)
	Replace(ctx context.Context, store storage.Store, patients []entity.Patient) error
}
