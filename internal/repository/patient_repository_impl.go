package repository

import (
	"context"
	"strings"
	"time"

	"clinic-agenda/internal/domain/entity"
	domainRepo "clinic-agenda/internal/domain/repository"
	"clinic-agenda/internal/infrastructure/storage"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(ctx context.Context, store storage.Store, patient *entity.Patient) error {
	patients, err := loadCollection[entity.Patient](ctx, store, storage.PatientsKey)
	if err != nil {
		return err
	}

	patient.ID = nextID(patients, func(p entity.Patient) int { return p.ID })
	patient.CreatedAt = time.Now()

	patients = append(patients, *patient)
	return saveCollection(ctx, store, storage.PatientsKey, patients)
}

func (r *patientRepository) FindAll(ctx context.Context, store storage.Store) ([]entity.Patient, error) {
	return loadCollection[entity.Patient](ctx, store, storage.PatientsKey)
}

func (r *patientRepository) FindByID(ctx context.Context, store storage.Store, id int) (*entity.Patient, error) {
	patients, err := loadCollection[entity.Patient](ctx, store, storage.PatientsKey)
	if err != nil {
		return nil, err
	}
	for i := range patients {
		if patients[i].ID == id {
			return &patients[i], nil
		}
	}
	return nil, nil
}

func (r *patientRepository) Update(ctx context.Context, store storage.Store, patient *entity.Patient) (*entity.Patient, error) {
	patients, err := loadCollection[entity.Patient](ctx, store, storage.PatientsKey)
	if err != nil {
		return nil, err
	}

	for i := range patients {
		if patients[i].ID == patient.ID {
			patient.CreatedAt = patients[i].CreatedAt
			patient.UpdatedAt = time.Now()
			patients[i] = *patient
			if err := saveCollection(ctx, store, storage.PatientsKey, patients); err != nil {
				return nil, err
			}
			return &patients[i], nil
		}
	}
	return nil, nil
}

func (r *patientRepository) Delete(ctx context.Context, store storage.Store, id int) error {
	patients, err := loadCollection[entity.Patient](ctx, store, storage.PatientsKey)
	if err != nil {
		return err
	}

	filtered := []entity.Patient{}
	for _, p := range patients {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}
	return saveCollection(ctx, store, storage.PatientsKey, filtered)
}

// Search matches case-insensitively on name and email, and by substring
// on the CPF exactly as typed.
func (r *patientRepository) Search(ctx context.Context, store storage.Store, query string) ([]entity.Patient, error) {
	patients, err := loadCollection[entity.Patient](ctx, store, storage.PatientsKey)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(query)
	results := []entity.Patient{}
	for _, p := range patients {
		if strings.Contains(strings.ToLower(p.Name), lower) ||
			strings.Contains(p.CPF, query) ||
			(p.Email != "" && strings.Contains(strings.ToLower(p.Email), lower)) {
			results = append(results, p)
		}
	}
	return results, nil
}

func (r *patientRepository) Replace(ctx context.Context, store storage.Store, patients []entity.Patient) error {
	if patients == nil {
		patients = []entity.Patient{}
	}
	return saveCollection(ctx, store, storage.PatientsKey, patients)
}
