package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/infrastructure/storage"
	"clinic-agenda/internal/repository"
	"clinic-agenda/internal/service"
	"clinic-agenda/internal/usecase"
	"clinic-agenda/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

type appointmentHandlerEnv struct {
	handler      *AppointmentHandler
	patients     usecase.PatientUsecase
	appointments usecase.AppointmentUsecase
}

func newAppointmentTestHandler(t *testing.T) *appointmentHandlerEnv {
	t.Helper()

	store, err := storage.NewFileStore(afero.NewMemMapFs(), "data")
	assert.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	mu := &sync.RWMutex{}
	patientRepo := repository.NewPatientRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	patientUsecase := usecase.NewPatientUsecase(store, log, mu, patientRepo, appointmentRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(store, log, mu, appointmentRepo, patientRepo, service.NewWhatsAppService("55"))

	return &appointmentHandlerEnv{
		handler:      NewAppointmentHandler(appointmentUsecase, validator.NewValidator()),
		patients:     patientUsecase,
		appointments: appointmentUsecase,
	}
}

func (e *appointmentHandlerEnv) seedAppointment(t *testing.T, status string) int {
	t.Helper()
	ctx := context.Background()

	patient, err := e.patients.Create(ctx, &dto.PatientCreateRequest{
		Name: "Ana Silva", CPF: "123.456.789-00", Phone: "11 98888-7777",
	})
	assert.NoError(t, err)

	appointment, err := e.appointments.Create(ctx, &dto.AppointmentCreateRequest{
		PatientID: patient.ID,
		Date:      "2030-06-01",
		Time:      "09:00",
		Specialty: "Cardiologia",
		Status:    status,
	})
	assert.NoError(t, err)
	return appointment.ID
}

func TestCreateAppointmentReturnsCreated(t *testing.T) {
	env := newAppointmentTestHandler(t)

	body := `{"patient_id":1,"date":"2030-06-01","time":"09:00","specialty":"Cardiologia"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()

	env.handler.CreateAppointment(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":1`)
	assert.Contains(t, rec.Body.String(), `"status":"Scheduled"`)
}

func TestCreateAppointmentValidatesDateFormat(t *testing.T) {
	env := newAppointmentTestHandler(t)

	body := `{"patient_id":1,"date":"01/06/2030","time":"09:00","specialty":"Cardiologia"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()

	env.handler.CreateAppointment(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Validation failed")
}

func TestGetAppointmentNotFound(t *testing.T) {
	env := newAppointmentTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/42", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "42"})
	rec := httptest.NewRecorder()

	env.handler.GetAppointment(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetConfirmationLinkRequiresConfirmedStatus(t *testing.T) {
	env := newAppointmentTestHandler(t)
	env.seedAppointment(t, "Scheduled")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/1/confirmation-link", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rec := httptest.NewRecorder()

	env.handler.GetConfirmationLink(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "not confirmed")
}

func TestGetConfirmationLinkForConfirmedAppointment(t *testing.T) {
	env := newAppointmentTestHandler(t)
	env.seedAppointment(t, "Confirmed")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/1/confirmation-link", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rec := httptest.NewRecorder()

	env.handler.GetConfirmationLink(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wa.me/5511988887777")
}

func TestGetUpcomingAppointmentsRejectsInvalidLimit(t *testing.T) {
	env := newAppointmentTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/upcoming?limit=zero", nil)
	rec := httptest.NewRecorder()

	env.handler.GetUpcomingAppointments(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
