package dto

import "time"

type AppointmentCreateRequest struct {
	PatientID int    `json:"patient_id" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string `json:"time" validate:"required,datetime=15:04"`
	Specialty string `json:"specialty" validate:"required"`
	Status    string `json:"status" validate:"omitempty,oneof=Scheduled Confirmed Completed Cancelled"`
	Notes     string `json:"notes"`
}

// AppointmentUpdateRequest carries a partial record: zero fields are left
// unchanged on the stored appointment. The zero value is the omitted
// sentinel, so a stored value cannot be cleared through an update.
type AppointmentUpdateRequest struct {
	PatientID int    `json:"patient_id" validate:"omitempty,gt=0"`
	Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time      string `json:"time" validate:"omitempty,datetime=15:04"`
	Specialty string `json:"specialty"`
	Status    string `json:"status" validate:"omitempty,oneof=Scheduled Confirmed Completed Cancelled"`
	Notes     string `json:"notes"`
}

// AppointmentResponse resolves the soft patient reference to a display
// name; PatientName carries a placeholder when the reference is dangling.
type AppointmentResponse struct {
	ID          int       `json:"id"`
	PatientID   int       `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Specialty   string    `json:"specialty"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

type ConfirmationLinkResponse struct {
	Link  string `json:"link"`
	Phone string `json:"phone"`
}
