package repository

import (
	"context"
	"time"

	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/infrastructure/storage"
)

type AppointmentRepository interface {
	Create(ctx context.Context, store storage.Store, appointment *entity.Appointment) error
	FindAll(ctx context.Context, store storage.Store) ([]entity.Appointment, error)
	// FindByID returns (nil, nil) when no record matches.
	FindByID(ctx context.Context, store storage.Store, id int) (*entity.Appointment, error)
	Update(ctx context.Context, store storage.Store, appointment *entity.Appointment) (*entity.Appointment, error)
	Delete(ctx context.Context, store storage.Store, id int) error
	FindByDate(ctx context.Context, store storage.Store, date string) ([]entity.Appointment, error)
	FindBySpecialty(ctx context.Context, store storage.Store, specialty string) ([]entity.Appointment, error)
	FindByPatient(ctx context.Context, store storage.Store, patientID int) ([]entity.Appointment, error)
	// FindUpcoming returns non-cancelled appointments at or after now,
	// ascending by start instant, truncated to limit.
	FindUpcoming(ctx context.Context, store storage.Store, now time.Time, limit int) ([]entity.Appointment, error)
	// DeleteByPatient removes every appointment referencing patientID.
	// Used by the patient-deletion cascade.
	DeleteByPatient(ctx context.Context, store storage.Store, patientID int) error
	Replace(ctx context.Context, store storage.Store, appointments []entity.Appointment) error
}
