package converter

import (
	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity + resolved patient
// name to its response DTO
func AppointmentToResponse(appointment *entity.Appointment, patientName string) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:          appointment.ID,
		PatientID:   appointment.PatientID,
		PatientName: patientName,
		Date:        appointment.Date,
		Time:        appointment.Time,
		Specialty:   appointment.Specialty,
		Status:      string(appointment.Status),
		Notes:       appointment.Notes,
		CreatedAt:   appointment.CreatedAt,
		UpdatedAt:   appointment.UpdatedAt,
	}
}
