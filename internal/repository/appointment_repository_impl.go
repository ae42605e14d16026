package repository

import (
	"context"
	"sort"
	"time"

	"clinic-agenda/internal/domain/entity"
	domainRepo "clinic-agenda/internal/domain/repository"
	"clinic-agenda/internal/infrastructure/storage"
)

// DefaultUpcomingLimit bounds FindUpcoming when the caller passes no limit.
const DefaultUpcomingLimit = 5

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, store storage.Store, appointment *entity.Appointment) error {
	appointments, err := loadCollection[entity.Appointment](ctx, store, storage.AppointmentsKey)
	if err != nil {
		return err
	}

	appointment.ID = nextID(appointments, func(a entity.Appointment) int { return a.ID })
	appointment.CreatedAt = time.Now()

	appointments = append(appointments, *appointment)
	return saveCollection(ctx, store, storage.AppointmentsKey, appointments)
}

func (r *appointmentRepository) FindAll(ctx context.Context, store storage.Store) ([]entity.Appointment, error) {
	return loadCollection[entity.Appointment](ctx, store, storage.AppointmentsKey)
}

func (r *appointmentRepository) FindByID(ctx context.Context, store storage.Store, id int) (*entity.Appointment, error) {
	appointments, err := loadCollection[entity.Appointment](ctx, store, storage.AppointmentsKey)
	if err != nil {
		return nil, err
	}
	for i := range appointments {
		if appointments[i].ID == id {
			return &appointments[i], nil
		}
	}
	return nil, nil
}

func (r *appointmentRepository) Update(ctx context.Context, store storage.Store, appointment *entity.Appointment) (*entity.Appointment, error) {
	appointments, err := loadCollection[entity.Appointment](ctx, store, storage.AppointmentsKey)
	if err != nil {
		return nil, err
	}

	for i := range appointments {
		if appointments[i].ID == appointment.ID {
			appointment.CreatedAt = appointments[i].CreatedAt
			appointment.UpdatedAt = time.Now()
			appointments[i] = *appointment
			if err := saveCollection(ctx, store, storage.AppointmentsKey, appointments); err != nil {
				return nil, err
			}
			return &appointments[i], nil
		}
	}
	return nil, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, store storage.Store, id int) error {
	return r.deleteWhere(ctx, store, func(a entity.Appointment) bool { return a.ID == id })
}

func (r *appointmentRepository) DeleteByPatient(ctx context.Context, store storage.Store, patientID int) error {
	return r.deleteWhere(ctx, store, func(a entity.Appointment) bool { return a.PatientID == patientID })
}

func (r *appointmentRepository) deleteWhere(ctx context.Context, store storage.Store, match func(entity.Appointment) bool) error {
	appointments, err := loadCollection[entity.Appointment](ctx, store, storage.AppointmentsKey)
	if err != nil {
		return err
	}

	filtered := []entity.Appointment{}
	for _, a := range appointments {
		if !match(a) {
			filtered = append(filtered, a)
		}
	}
	return saveCollection(ctx, store, storage.AppointmentsKey, filtered)
}

func (r *appointmentRepository) FindByDate(ctx context.Context, store storage.Store, date string) ([]entity.Appointment, error) {
	return r.findWhere(ctx, store, func(a entity.Appointment) bool { return a.Date == date })
}

func (r *appointmentRepository) FindBySpecialty(ctx context.Context, store storage.Store, specialty string) ([]entity.Appointment, error) {
	return r.findWhere(ctx, store, func(a entity.Appointment) bool { return a.Specialty == specialty })
}

func (r *appointmentRepository) FindByPatient(ctx context.Context, store storage.Store, patientID int) ([]entity.Appointment, error) {
	return r.findWhere(ctx, store, func(a entity.Appointment) bool { return a.PatientID == patientID })
}

func (r *appointmentRepository) findWhere(ctx context.Context, store storage.Store, match func(entity.Appointment) bool) ([]entity.Appointment, error) {
	appointments, err := loadCollection[entity.Appointment](ctx, store, storage.AppointmentsKey)
	if err != nil {
		return nil, err
	}

	results := []entity.Appointment{}
	for _, a := range appointments {
		if match(a) {
			results = append(results, a)
		}
	}
	return results, nil
}

func (r *appointmentRepository) FindUpcoming(ctx context.Context, store storage.Store, now time.Time, limit int) ([]entity.Appointment, error) {
	appointments, err := loadCollection[entity.Appointment](ctx, store, storage.AppointmentsKey)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}

	type timed struct {
		appointment entity.Appointment
		start       time.Time
	}
	upcoming := []timed{}
	for _, a := range appointments {
		start, ok := a.StartTime()
		if !ok || a.IsCancelled() || start.Before(now) {
			continue
		}
		upcoming = append(upcoming, timed{appointment: a, start: start})
	}

	// Stable: equal instants keep their stored relative order.
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].start.Before(upcoming[j].start)
	})

	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	results := make([]entity.Appointment, 0, len(upcoming))
	for _, t := range upcoming {
		results = append(results, t.appointment)
	}
	return results, nil
}

func (r *appointmentRepository) Replace(ctx context.Context, store storage.Store, appointments []entity.Appointment) error {
	if appointments == nil {
		appointments = []entity.Appointment{}
	}
	return saveCollection(ctx, store, storage.AppointmentsKey, appointments)
}
