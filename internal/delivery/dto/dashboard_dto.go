package dto

// StatsResponse carries the dashboard aggregate counts.
type StatsResponse struct {
	TotalPatients     int `json:"total_patients"`
	TodayAppointments int `json:"today_appointments"`
	WeekAppointments  int `json:"week_appointments"`
	TotalAppointments int `json:"total_appointments"`
}
