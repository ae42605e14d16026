package usecase

import (
	"context"
	"sync"
	"time"

	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/repository"
	"clinic-agenda/internal/infrastructure/storage"

	"github.com/sirupsen/logrus"
)

// DashboardUsecase exposes read-only aggregate counts over both
// collections. Everything is recomputed from current store contents on
// every call; nothing here mutates state.
type DashboardUsecase interface {
	Stats(ctx context.Context) (*dto.StatsResponse, error)
}

type dashboardUsecase struct {
	store           storage.Store
	log             *logrus.Logger
	mu              *sync.RWMutex
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	now             func() time.Time
}

func NewDashboardUsecase(
	store storage.Store,
	log *logrus.Logger,
	mu *sync.RWMutex,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		store:           store,
		log:             log,
		mu:              mu,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		now:             time.Now,
	}
}

func (u *dashboardUsecase) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	// Reading both collections, so hold the read lock: counts must never
	// see a patient-deletion cascade half-applied.
	u.mu.RLock()
	defer u.mu.RUnlock()

	patients, err := u.patientRepo.FindAll(ctx, u.store)
	if err != nil {
		u.log.Warnf("Failed to load patients: %+v", err)
		return nil, err
	}
	appointments, err := u.appointmentRepo.FindAll(ctx, u.store)
	if err != nil {
		u.log.Warnf("Failed to load appointments: %+v", err)
		return nil, err
	}

	// Single clock read: today and the week boundary must derive from the
	// same instant even across midnight.
	now := u.now()
	today := now.Format("2006-01-02")
	weekEnd := now.AddDate(0, 0, 7).Format("2006-01-02")

	todayCount := 0
	weekCount := 0
	for _, a := range appointments {
		if a.Date == today {
			todayCount++
		}
		// Week-ahead window is [today, today+7d] inclusive, regardless of
		// status. Dates are YYYY-MM-DD so string order is date order.
		if a.Date >= today && a.Date <= weekEnd {
			weekCount++
		}
	}

	return &dto.StatsResponse{
		TotalPatients:     len(patients),
		TodayAppointments: todayCount,
		WeekAppointments:  weekCount,
		TotalAppointments: len(appointments),
	}, nil
}
