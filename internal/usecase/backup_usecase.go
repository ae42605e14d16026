package usecase

import (
	"context"
	"sync"
	"time"

	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/domain/repository"
	"clinic-agenda/internal/infrastructure/storage"

	"github.com/sirupsen/logrus"
)

// BackupUsecase handles whole-ledger snapshots: export, wholesale import
// and a full reset. Import does not validate referential integrity between
// the imported collections.
type BackupUsecase interface {
	Export(ctx context.Context) (*entity.Snapshot, error)
	Import(ctx context.Context, snapshot *entity.Snapshot) error
	Reset(ctx context.Context) error
}

type backupUsecase struct {
	store           storage.Store
	log             *logrus.Logger
	mu              *sync.RWMutex
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
}

func NewBackupUsecase(
	store storage.Store,
	log *logrus.Logger,
	mu *sync.RWMutex,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
) BackupUsecase {
	return &backupUsecase{
		store:           store,
		log:             log,
		mu:              mu,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
	}
}

// Export snapshots both collections under the read lock, so a snapshot
// never captures a cascade between its two writes.
func (u *backupUsecase) Export(ctx context.Context) (*entity.Snapshot, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	patients, err := u.patientRepo.FindAll(ctx, u.store)
	if err != nil {
		u.log.Warnf("Failed to export patients: %+v", err)
		return nil, err
	}
	appointments, err := u.appointmentRepo.FindAll(ctx, u.store)
	if err != nil {
		u.log.Warnf("Failed to export appointments: %+v", err)
		return nil, err
	}
	return &entity.Snapshot{
		Patients:     patients,
		Appointments: appointments,
		ExportDate:   time.Now(),
	}, nil
}

// Import replaces each collection that is present in the snapshot; a nil
// collection leaves the stored one untouched.
func (u *backupUsecase) Import(ctx context.Context, snapshot *entity.Snapshot) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if snapshot.Patients != nil {
		if err := u.patientRepo.Replace(ctx, u.store, snapshot.Patients); err != nil {
			u.log.Warnf("Failed to import patients: %+v", err)
			return err
		}
	}
	if snapshot.Appointments != nil {
		if err := u.appointmentRepo.Replace(ctx, u.store, snapshot.Appointments); err != nil {
			u.log.Warnf("Failed to import appointments: %+v", err)
			return err
		}
	}
	return nil
}

func (u *backupUsecase) Reset(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.patientRepo.Replace(ctx, u.store, []entity.Patient{}); err != nil {
		u.log.Warnf("Failed to reset patients: %+v", err)
		return err
	}
	if err := u.appointmentRepo.Replace(ctx, u.store, []entity.Appointment{}); err != nil {
		u.log.Warnf("Failed to reset appointments: %+v", err)
		return err
	}
	return nil
}
