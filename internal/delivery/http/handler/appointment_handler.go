package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/usecase"
	"clinic-agenda/pkg/response"
	"clinic-agenda/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.AppointmentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

// ListAppointments returns the full table ordered most recent first.
// Optional ?date= and ?specialty= filters are combined as an AND.
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	filter := usecase.AppointmentFilter{
		Date:      r.URL.Query().Get("date"),
		Specialty: r.URL.Query().Get("specialty"),
	}

	appointments, err := h.appointmentUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		default:
			response.InternalServerError(w, "Failed to get appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dto.AppointmentUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		default:
			response.InternalServerError(w, "Failed to update appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.appointmentUsecase.Delete(r.Context(), id); err != nil {
		response.InternalServerError(w, "Failed to delete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

func (h *AppointmentHandler) GetUpcomingAppointments(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.Error(w, http.StatusBadRequest, "Invalid limit", nil)
			return
		}
		limit = parsed
	}

	appointments, err := h.appointmentUsecase.Upcoming(r.Context(), limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list upcoming appointments")
		return
	}

	response.Success(w, http.StatusOK, "Upcoming appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetTodayAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.Today(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list today's appointments")
		return
	}

	response.Success(w, http.StatusOK, "Today's appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetConfirmationLink(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	link, err := h.appointmentUsecase.ConfirmationLink(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrAppointmentNotConfirmed:
			response.Error(w, http.StatusConflict, "Appointment is not confirmed", nil)
		default:
			response.InternalServerError(w, "Failed to build confirmation link")
		}
		return
	}

	response.Success(w, http.StatusOK, "Confirmation link built successfully", link)
}
