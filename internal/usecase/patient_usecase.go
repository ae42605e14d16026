package usecase

import (
	"context"
	"errors"
	"sync"

	"clinic-agenda/internal/converter"
	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/domain/repository"
	"clinic-agenda/internal/infrastructure/storage"

	"github.com/sirupsen/logrus"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
)

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.PatientCreateRequest) (*dto.PatientResponse, error)
	List(ctx context.Context) ([]dto.PatientResponse, error)
	Get(ctx context.Context, id int) (*dto.PatientResponse, error)
	Update(ctx context.Context, id int, req *dto.PatientUpdateRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, id int) error
	Search(ctx context.Context, query string) ([]dto.PatientResponse, error)
}

type patientUsecase struct {
	store           storage.Store
	log             *logrus.Logger
	mu              *sync.RWMutex
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
}

func NewPatientUsecase(
	store storage.Store,
	log *logrus.Logger,
	mu *sync.RWMutex,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
) PatientUsecase {
	return &patientUsecase{
		store:           store,
		log:             log,
		mu:              mu,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.PatientCreateRequest) (*dto.PatientResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	patient := &entity.Patient{
		Name:      req.Name,
		CPF:       req.CPF,
		BirthDate: req.BirthDate,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		Notes:     req.Notes,
	}
	if err := u.patientRepo.Create(ctx, u.store, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) List(ctx context.Context) ([]dto.PatientResponse, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	patients, err := u.patientRepo.FindAll(ctx, u.store)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}
	return converter.PatientsToResponses(patients), nil
}

func (u *patientUsecase) Get(ctx context.Context, id int) (*dto.PatientResponse, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	patient, err := u.patientRepo.FindByID(ctx, u.store, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

// Update shallow-merges the supplied fields over the stored record. The id
// and CreatedAt always survive, whatever the caller sends.
func (u *patientUsecase) Update(ctx context.Context, id int, req *dto.PatientUpdateRequest) (*dto.PatientResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	patient, err := u.patientRepo.FindByID(ctx, u.store, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.Name != "" {
		patient.Name = req.Name
	}
	if req.CPF != "" {
		patient.CPF = req.CPF
	}
	if req.BirthDate != "" {
		patient.BirthDate = req.BirthDate
	}
	if req.Phone != "" {
		patient.Phone = req.Phone
	}
	if req.Email != "" {
		patient.Email = req.Email
	}
	if req.Address != "" {
		patient.Address = req.Address
	}
	if req.Notes != "" {
		patient.Notes = req.Notes
	}

	updated, err := u.patientRepo.Update(ctx, u.store, patient)
	if err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(updated), nil
}

// Delete removes the patient and cascades over its appointments.
// Appointment cleanup runs first: if the second write fails, the patient
// remains with its appointments already gone, so a dangling patientId
// reference is never persisted. Deleting an absent id is a no-op success.
func (u *patientUsecase) Delete(ctx context.Context, id int) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.appointmentRepo.DeleteByPatient(ctx, u.store, id); err != nil {
		u.log.Warnf("Failed to cascade appointment deletion: %+v", err)
		return err
	}
	if err := u.patientRepo.Delete(ctx, u.store, id); err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}
	return nil
}

func (u *patientUsecase) Search(ctx context.Context, query string) ([]dto.PatientResponse, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	patients, err := u.patientRepo.Search(ctx, u.store, query)
	if err != nil {
		u.log.Warnf("Failed to search patients: %+v", err)
		return nil, err
	}
	return converter.PatientsToResponses(patients), nil
}
