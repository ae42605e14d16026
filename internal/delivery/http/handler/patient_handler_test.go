package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

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

func newTestHandler(t *testing.T) *PatientHandler {
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

	return NewPatientHandler(patientUsecase, appointmentUsecase, validator.NewValidator())
}

func TestCreatePatientReturnsCreated(t *testing.T) {
	h := newTestHandler(t)

	body := `{"name":"Ana Silva","cpf":"123.456.789-00","phone":"11 98888-7777"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreatePatient(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":1`)
	assert.Contains(t, rec.Body.String(), "Ana Silva")
}

func TestCreatePatientValidatesRequiredFields(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(`{"name":"Ana"}`))
	rec := httptest.NewRecorder()

	h.CreatePatient(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Validation failed")
}

func TestCreatePatientRejectsMalformedBody(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	h.CreatePatient(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPatientNotFound(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/42", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "42"})
	rec := httptest.NewRecorder()

	h.GetPatient(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPatientInvalidID(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/abc", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "abc"})
	rec := httptest.NewRecorder()

	h.GetPatient(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
