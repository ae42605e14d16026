package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"clinic-agenda/internal/converter"
	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/domain/repository"
	"clinic-agenda/internal/infrastructure/storage"
	"clinic-agenda/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrAppointmentNotConfirmed = errors.New("appointment is not confirmed")
)

// UnknownPatientName is substituted wherever an appointment's patientId no
// longer resolves to a patient record.
const UnknownPatientName = "Unknown patient"

// AppointmentFilter narrows List results. Empty fields apply no constraint;
// both constraints must hold when both are set.
type AppointmentFilter struct {
	Date      string
	Specialty string
}

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.AppointmentCreateRequest) (*dto.AppointmentResponse, error)
	List(ctx context.Context, filter AppointmentFilter) ([]dto.AppointmentResponse, error)
	Get(ctx context.Context, id int) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, id int, req *dto.AppointmentUpdateRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id int) error
	Upcoming(ctx context.Context, limit int) ([]dto.AppointmentResponse, error)
	Today(ctx context.Context) ([]dto.AppointmentResponse, error)
	ListByPatient(ctx context.Context, patientID int) ([]dto.AppointmentResponse, error)
	ConfirmationLink(ctx context.Context, id int) (*dto.ConfirmationLinkResponse, error)
}

type appointmentUsecase struct {
	store           storage.Store
	log             *logrus.Logger
	mu              *sync.RWMutex
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	whatsapp        *service.WhatsAppService
	now             func() time.Time
}

func NewAppointmentUsecase(
	store storage.Store,
	log *logrus.Logger,
	mu *sync.RWMutex,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	whatsapp *service.WhatsAppService,
) AppointmentUsecase {
	return &appointmentUsecase{
		store:           store,
		log:             log,
		mu:              mu,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		whatsapp:        whatsapp,
		now:             time.Now,
	}
}

func (u *appointmentUsecase) Create(ctx context.Context, req *dto.AppointmentCreateRequest) (*dto.AppointmentResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	status := entity.AppointmentStatus(req.Status)
	if status == "" {
		status = entity.StatusScheduled
	}

	appointment := &entity.Appointment{
		PatientID: req.PatientID,
		Date:      req.Date,
		Time:      req.Time,
		Specialty: req.Specialty,
		Status:    status,
		Notes:     req.Notes,
	}
	if err := u.appointmentRepo.Create(ctx, u.store, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}
	return u.toResponse(ctx, appointment)
}

// List returns the full table, date/specialty filters ANDed together,
// ordered descending by combined date+time instant.
func (u *appointmentUsecase) List(ctx context.Context, filter AppointmentFilter) ([]dto.AppointmentResponse, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	appointments, err := u.appointmentRepo.FindAll(ctx, u.store)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	filtered := []entity.Appointment{}
	for _, a := range appointments {
		if filter.Date != "" && a.Date != filter.Date {
			continue
		}
		if filter.Specialty != "" && a.Specialty != filter.Specialty {
			continue
		}
		filtered = append(filtered, a)
	}
	sortByStartDescending(filtered)

	return u.toResponses(ctx, filtered)
}

func (u *appointmentUsecase) Get(ctx context.Context, id int) (*dto.AppointmentResponse, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	appointment, err := u.appointmentRepo.FindByID(ctx, u.store, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return u.toResponse(ctx, appointment)
}

func (u *appointmentUsecase) Update(ctx context.Context, id int, req *dto.AppointmentUpdateRequest) (*dto.AppointmentResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	appointment, err := u.appointmentRepo.FindByID(ctx, u.store, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if req.PatientID > 0 {
		appointment.PatientID = req.PatientID
	}
	if req.Date != "" {
		appointment.Date = req.Date
	}
	if req.Time != "" {
		appointment.Time = req.Time
	}
	if req.Specialty != "" {
		appointment.Specialty = req.Specialty
	}
	if req.Status != "" {
		appointment.Status = entity.AppointmentStatus(req.Status)
	}
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}

	updated, err := u.appointmentRepo.Update(ctx, u.store, appointment)
	if err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrAppointmentNotFound
	}
	return u.toResponse(ctx, updated)
}

// Delete is idempotent: removing an absent id succeeds.
func (u *appointmentUsecase) Delete(ctx context.Context, id int) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.appointmentRepo.Delete(ctx, u.store, id); err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return err
	}
	return nil
}

func (u *appointmentUsecase) Upcoming(ctx context.Context, limit int) ([]dto.AppointmentResponse, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	appointments, err := u.appointmentRepo.FindUpcoming(ctx, u.store, u.now(), limit)
	if err != nil {
		u.log.Warnf("Failed to list upcoming appointments: %+v", err)
		return nil, err
	}
	return u.toResponses(ctx, appointments)
}

func (u *appointmentUsecase) Today(ctx context.Context) ([]dto.AppointmentResponse, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	today := u.now().Format("2006-01-02")
	appointments, err := u.appointmentRepo.FindByDate(ctx, u.store, today)
	if err != nil {
		u.log.Warnf("Failed to list today's appointments: %+v", err)
		return nil, err
	}
	return u.toResponses(ctx, appointments)
}

func (u *appointmentUsecase) ListByPatient(ctx context.Context, patientID int) ([]dto.AppointmentResponse, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	appointments, err := u.appointmentRepo.FindByPatient(ctx, u.store, patientID)
	if err != nil {
		u.log.Warnf("Failed to list patient appointments: %+v", err)
		return nil, err
	}
	return u.toResponses(ctx, appointments)
}

// ConfirmationLink builds the WhatsApp deep link for a confirmed
// appointment. Requires a resolvable patient with a phone number.
func (u *appointmentUsecase) ConfirmationLink(ctx context.Context, id int) (*dto.ConfirmationLinkResponse, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	appointment, err := u.appointmentRepo.FindByID(ctx, u.store, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.Status != entity.StatusConfirmed {
		return nil, ErrAppointmentNotConfirmed
	}

	patient, err := u.patientRepo.FindByID(ctx, u.store, appointment.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	link := u.whatsapp.ConfirmationLink(patient, appointment)
	return &dto.ConfirmationLinkResponse{Link: link, Phone: patient.Phone}, nil
}

// patientNames maps patient id to name for display resolution.
func (u *appointmentUsecase) patientNames(ctx context.Context) (map[int]string, error) {
	patients, err := u.patientRepo.FindAll(ctx, u.store)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(patients))
	for _, p := range patients {
		names[p.ID] = p.Name
	}
	return names, nil
}

func (u *appointmentUsecase) toResponse(ctx context.Context, appointment *entity.Appointment) (*dto.AppointmentResponse, error) {
	names, err := u.patientNames(ctx)
	if err != nil {
		u.log.Warnf("Failed to resolve patient names: %+v", err)
		return nil, err
	}
	return converter.AppointmentToResponse(appointment, resolveName(names, appointment.PatientID)), nil
}

func (u *appointmentUsecase) toResponses(ctx context.Context, appointments []entity.Appointment) ([]dto.AppointmentResponse, error) {
	names, err := u.patientNames(ctx)
	if err != nil {
		u.log.Warnf("Failed to resolve patient names: %+v", err)
		return nil, err
	}
	responses := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		responses = append(responses, *converter.AppointmentToResponse(&appointments[i], resolveName(names, appointments[i].PatientID)))
	}
	return responses, nil
}

func resolveName(names map[int]string, patientID int) string {
	if name, ok := names[patientID]; ok {
		return name
	}
	return UnknownPatientName
}

// sortByStartDescending orders most recent/future first. Records whose
// date or time does not parse sort last; equal instants keep stored order.
func sortByStartDescending(appointments []entity.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		ti, _ := appointments[i].StartTime()
		tj, _ := appointments[j].StartTime()
		return ti.After(tj)
	})
}
