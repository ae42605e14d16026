package entity

import "time"

// Patient represents a clinic patient record.
//
// Records are persisted as a JSON array under a single storage key, so the
// JSON tags here define the on-disk layout as well as the export format.
type Patient struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CPF       string    `json:"cpf"`
	BirthDate string    `json:"birthDate,omitempty"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// PhoneDigits returns the phone number stripped to bare digits,
// suitable for building a messaging deep link.
func (p *Patient) PhoneDigits() string {
	digits := make([]byte, 0, len(p.Phone))
	for i := 0; i < len(p.Phone); i++ {
		if p.Phone[i] >= '0' && p.Phone[i] <= '9' {
			digits = append(digits, p.Phone[i])
		}
	}
	return string(digits)
}
