package usecase

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"clinic-agenda/internal/delivery/dto"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentCreateDefaultsToScheduled(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.appointments.Create(ctx, &dto.AppointmentCreateRequest{
		PatientID: 1, Date: "2030-06-01", Time: "09:00", Specialty: "Clínico Geral",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Scheduled", created.Status)
}

func TestAppointmentListFiltersAreANDed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mk := func(date, specialty string) {
		_, err := env.appointments.Create(ctx, &dto.AppointmentCreateRequest{
			PatientID: 1, Date: date, Time: "09:00", Specialty: specialty,
		})
		assert.NoError(t, err)
	}
	mk("2024-06-01", "Clínico Geral")
	mk("2024-06-01", "Ortopedista")
	mk("2024-06-02", "Clínico Geral")

	both, err := env.appointments.List(ctx, AppointmentFilter{Date: "2024-06-01", Specialty: "Clínico Geral"})
	assert.NoError(t, err)
	assert.Len(t, both, 1)
	assert.Equal(t, "2024-06-01", both[0].Date)
	assert.Equal(t, "Clínico Geral", both[0].Specialty)

	dateOnly, err := env.appointments.List(ctx, AppointmentFilter{Date: "2024-06-01"})
	assert.NoError(t, err)
	assert.Len(t, dateOnly, 2)

	unfiltered, err := env.appointments.List(ctx, AppointmentFilter{})
	assert.NoError(t, err)
	assert.Len(t, unfiltered, 3)
}

func TestAppointmentListSortsDescending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	early, err := env.appointments.Create(ctx, &dto.AppointmentCreateRequest{
		PatientID: 1, Date: "2024-06-01", Time: "09:00", Specialty: "Clínico Geral",
	})
	assert.NoError(t, err)
	late, err := env.appointments.Create(ctx, &dto.AppointmentCreateRequest{
		PatientID: 1, Date: "2024-06-02", Time: "08:00", Specialty: "Clínico Geral",
	})
	assert.NoError(t, err)
	sameDayLater, err := env.appointments.Create(ctx, &dto.AppointmentCreateRequest{
		PatientID: 1, Date: "2024-06-01", Time: "15:00", Specialty: "Clínico Geral",
	})
	assert.NoError(t, err)

	listed, err := env.appointments.List(ctx, AppointmentFilter{})
	assert.NoError(t, err)
	assert.Len(t, listed, 3)
	assert.Equal(t, late.ID, listed[0].ID)
	assert.Equal(t, sameDayLater.ID, listed[1].ID)
	assert.Equal(t, early.ID, listed[2].ID)
}

func TestAppointmentUpcomingExcludesPastAndCancelled(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Minute)

	mk := func(at time.Time, status string) *dto.AppointmentResponse {
		created, err := env.appointments.Create(ctx, &dto.AppointmentCreateRequest{
			PatientID: 1,
			Date:      at.Format("2006-01-02"),
			Time:      at.Format("15:04"),
			Specialty: "Clínico Geral",
			Status:    status,
		})
		assert.NoError(t, err)
		return created
	}

	plus1h := mk(now.Add(time.Hour), "Scheduled")
	plus3h := mk(now.Add(3*time.Hour), "Scheduled")
	mk(now.Add(-time.Hour), "Scheduled")
	mk(now.Add(2*time.Hour), "Cancelled")

	upcoming, err := env.appointments.Upcoming(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, upcoming, 2)
	assert.Equal(t, plus1h.ID, upcoming[0].ID)
	assert.Equal(t, plus3h.ID, upcoming[1].ID)
}

func TestAppointmentTodayUsesCurrentDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fixed := time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)
	env.appointments.(*appointmentUsecase).now = func() time.Time { return fixed }

	_, err := env.appointments.Create(ctx, &dto.AppointmentCreateRequest{
		PatientID: 1, Date: "2024-06-01", Time: "14:00", Specialty: "Clínico Geral",
	})
	assert.NoError(t, err)
	_, err = env.appointments.Create(ctx, &dto.AppointmentCreateRequest{
		PatientID: 1, Date: "2024-06-02", Time: "14:00", Specialty: "Clínico Geral",
	})
	assert.NoError(t, err)

	today, err := env.appointments.Today(ctx)
	assert.NoError(t, err)
	assert.Len(t, today, 1)
	assert.Equal(t, "2024-06-01", today[0].Date)
}

func TestAppointmentResolvesPatientName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ana, err := env.patients.Create(ctx, &dto.PatientCreateRequest{Name: "Ana Silva", CPF: "1", Phone: "1"})
	assert.NoError(t, err)

	created, err := env.appointments.Create(ctx, &dto.AppointmentCreateRequest{
		PatientID: ana.ID, Date: "2030-06-01", Time: "09:00", Specialty: "Clínico Geral",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Ana Silva", created.PatientName)
}

func TestAppointmentUnknownPatientPlaceholder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Dangling soft reference: patientId 99 resolves to nothing.
	created, err := env.appointments.Create(ctx, &dto.AppointmentCreateRequest{
		PatientID: 99, Date: "2030-06-01", Time: "09:00", Specialty: "Clínico Geral",
	})
	assert.NoError(t, err)
	assert.Equal(t, UnknownPatientName, created.PatientName)
}

func TestAppointmentUpdateMergesFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.appointments.Create(ctx, &dto.AppointmentCreateRequest{
		PatientID: 1, Date: "2030-06-01", Time: "09:00", Specialty: "Clínico Geral",
		Notes: "bring exams",
	})
	assert.NoError(t, err)

	updated, err := env.appointments.Update(ctx, created.ID, &dto.AppointmentUpdateRequest{Status: "Confirmed"})
	assert.NoError(t, err)
	assert.Equal(t, "Confirmed", updated.Status)
	// Zero fields leave the stored values in place.
	assert.Equal(t, "2030-06-01", updated.Date)
	assert.Equal(t, "09:00", updated.Time)
	assert.Equal(t, "bring exams", updated.Notes)
	assert.Equal(t, created.ID, updated.ID)
}

func TestAppointmentDeleteAbsentSucceeds(t *testing.T) {
	env := newTestEnv(t)

	assert.NoError(t, env.appointments.Delete(context.Background(), 42))
}

func TestConfirmationLink(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ana, err := env.patients.Create(ctx, &dto.PatientCreateRequest{
		Name: "Ana Silva", CPF: "1", Phone: "(11) 98888-7777",
	})
	assert.NoError(t, err)

	created, err := env.appointments.Create(ctx, &dto.AppointmentCreateRequest{
		PatientID: ana.ID, Date: "2030-06-01", Time: "09:00", Specialty: "Clínico Geral", Status: "Confirmed",
	})
	assert.NoError(t, err)

	link, err := env.appointments.ConfirmationLink(ctx, created.ID)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(link.Link, "https://wa.me/5511988887777?text="), link.Link)
	assert.Equal(t, "(11) 98888-7777", link.Phone)

	parsed, err := url.Parse(link.Link)
	assert.NoError(t, err)
	message := parsed.Query().Get("text")
	assert.Contains(t, message, "Ana Silva")
	assert.Contains(t, message, "01/06/2030")
	assert.Contains(t, message, "09:00")
	assert.Contains(t, message, "Clínico Geral")
}

func TestConfirmationLinkRequiresConfirmedStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ana, err := env.patients.Create(ctx, &dto.PatientCreateRequest{Name: "Ana", CPF: "1", Phone: "1"})
	assert.NoError(t, err)

	created, err := env.appointments.Create(ctx, &dto.AppointmentCreateRequest{
		PatientID: ana.ID, Date: "2030-06-01", Time: "09:00", Specialty: "Clínico Geral",
	})
	assert.NoError(t, err)

	_, err = env.appointments.ConfirmationLink(ctx, created.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotConfirmed)
}

func TestConfirmationLinkDanglingPatient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.appointments.Create(ctx, &dto.AppointmentCreateRequest{
		PatientID: 99, Date: "2030-06-01", Time: "09:00", Specialty: "Clínico Geral", Status: "Confirmed",
	})
	assert.NoError(t, err)

	_, err = env.appointments.ConfirmationLink(ctx, created.ID)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}
