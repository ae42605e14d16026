package converter

import (
	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to its response DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:        patient.ID,
		Name:      patient.Name,
		CPF:       patient.CPF,
		BirthDate: patient.BirthDate,
		Phone:     patient.Phone,
		Email:     patient.Email,
		Address:   patient.Address,
		Notes:     patient.Notes,
		CreatedAt: patient.CreatedAt,
		UpdatedAt: patient.UpdatedAt,
	}
}

func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, *PatientToResponse(&patients[i]))
	}
	return responses
}
