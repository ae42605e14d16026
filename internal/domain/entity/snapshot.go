package entity

import "time"

// Snapshot is a full export of both collections. A nil collection on import
// means "leave that collection untouched".
type Snapshot struct {
	Patients     []Patient     `json:"patients"`
	Appointments []Appointment `json:"appointments"`
	ExportDate   time.Time     `json:"exportDate"`
}
