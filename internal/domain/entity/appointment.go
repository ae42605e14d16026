package entity

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusConfirmed AppointmentStatus = "Confirmed"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// dateTimeLayout combines the stored date and time-of-day strings.
const dateTimeLayout = "2006-01-02 15:04"

// Appointment represents a booked consultation. PatientID is a soft
// reference: the referenced patient may have been deleted, and consumers
// are expected to degrade gracefully when it does not resolve.
type Appointment struct {
	ID        int               `json:"id"`
	PatientID int               `json:"patientId"`
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	Specialty string            `json:"specialty"`
	Status    AppointmentStatus `json:"status"`
	Notes     string            `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt,omitzero"`
}

// StartTime resolves the appointment's combined date+time instant in local
// time. ok is false when either field does not parse.
func (a *Appointment) StartTime() (t time.Time, ok bool) {
	t, err := time.ParseInLocation(dateTimeLayout, a.Date+" "+a.Time, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsCancelled checks if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}
