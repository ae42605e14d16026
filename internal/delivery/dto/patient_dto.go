package dto

import "time"

type PatientCreateRequest struct {
	Name      string `json:"name" validate:"required"`
	CPF       string `json:"cpf" validate:"required"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Phone     string `json:"phone" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`
}

// PatientUpdateRequest carries a partial record: empty fields are left
// unchanged on the stored patient. The empty string is the omitted
// sentinel, so a stored value cannot be cleared through an update.
type PatientUpdateRequest struct {
	Name      string `json:"name"`
	CPF       string `json:"cpf"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`
}

type PatientResponse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CPF       string    `json:"cpf"`
	BirthDate string    `json:"birth_date,omitempty"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}
