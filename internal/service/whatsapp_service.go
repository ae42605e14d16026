package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"clinic-agenda/internal/domain/entity"
)

// WhatsAppService builds wa.me deep links carrying a templated
// confirmation message. The receptionist opens the link; nothing is sent
// from here.
type WhatsAppService struct {
	countryCode string
}

func NewWhatsAppService(countryCode string) *WhatsAppService {
	return &WhatsAppService{countryCode: countryCode}
}

// ConfirmationLink renders the confirmation message for the appointment
// and wraps it in a wa.me URL addressed to the patient's phone.
func (s *WhatsAppService) ConfirmationLink(patient *entity.Patient, appointment *entity.Appointment) string {
	message := s.confirmationMessage(patient, appointment)
	return fmt.Sprintf("https://wa.me/%s%s?text=%s",
		s.countryCode, patient.PhoneDigits(), url.QueryEscape(message))
}

func (s *WhatsAppService) confirmationMessage(patient *entity.Patient, appointment *entity.Appointment) string {
	var b strings.Builder
	b.WriteString("*APPOINTMENT CONFIRMATION*\n\n")
	fmt.Fprintf(&b, "Hello *%s*!\n\n", patient.Name)
	b.WriteString("Your appointment has been confirmed.\n\n")
	fmt.Fprintf(&b, "*Date:* %s\n", displayDate(appointment.Date))
	fmt.Fprintf(&b, "*Time:* %s\n", appointment.Time)
	fmt.Fprintf(&b, "*Specialty:* %s\n", appointment.Specialty)
	if appointment.Notes != "" {
		fmt.Fprintf(&b, "\n*Notes:* %s\n", appointment.Notes)
	}
	b.WriteString("\nPlease arrive 15 minutes early.\n\n")
	b.WriteString("_Clinic Agenda_")
	return b.String()
}

// displayDate renders a stored YYYY-MM-DD date as DD/MM/YYYY, falling back
// to the raw string when it does not parse.
func displayDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}
