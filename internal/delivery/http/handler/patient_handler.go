package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/usecase"
	"clinic-agenda/pkg/response"
	"clinic-agenda/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase     usecase.PatientUsecase
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewPatientHandler(
	patientUsecase usecase.PatientUsecase,
	appointmentUsecase usecase.AppointmentUsecase,
	validator *validator.CustomValidator,
) *PatientHandler {
	return &PatientHandler{
		patientUsecase:     patientUsecase,
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.PatientCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Create(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", patient)
}

// ListPatients returns all patients, or the search matches when a ?q=
// parameter is present. An empty query means "return all".
func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var (
		patients []dto.PatientResponse
		err      error
	)
	if query != "" {
		patients, err = h.patientUsecase.Search(r.Context(), query)
	} else {
		patients, err = h.patientUsecase.List(r.Context())
	}
	if err != nil {
		response.InternalServerError(w, "Failed to list patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	patient, err := h.patientUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dto.PatientUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to update patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.patientUsecase.Delete(r.Context(), id); err != nil {
		response.InternalServerError(w, "Failed to delete patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}

func (h *PatientHandler) GetPatientAppointments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	appointments, err := h.appointmentUsecase.ListByPatient(r.Context(), id)
	if err != nil {
		response.InternalServerError(w, "Failed to list patient appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// pathID parses the {id} path variable, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid id", nil)
		return 0, false
	}
	return id, true
}
