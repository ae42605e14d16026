package usecase

import (
	"io"
	"sync"
	"testing"

	"clinic-agenda/internal/infrastructure/storage"
	"clinic-agenda/internal/repository"
	"clinic-agenda/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

type testEnv struct {
	store        storage.Store
	patients     PatientUsecase
	appointments AppointmentUsecase
	dashboard    DashboardUsecase
	backup       BackupUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := storage.NewFileStore(afero.NewMemMapFs(), "data")
	assert.NoError(t, err)
	return newTestEnvWithStore(t, store)
}

func newTestEnvWithStore(t *testing.T, store storage.Store) *testEnv {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	mu := &sync.RWMutex{}
	patientRepo := repository.NewPatientRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	whatsapp := service.NewWhatsAppService("55")

	return &testEnv{
		store:        store,
		patients:     NewPatientUsecase(store, log, mu, patientRepo, appointmentRepo),
		appointments: NewAppointmentUsecase(store, log, mu, appointmentRepo, patientRepo, whatsapp),
		dashboard:    NewDashboardUsecase(store, log, mu, patientRepo, appointmentRepo),
		backup:       NewBackupUsecase(store, log, mu, patientRepo, appointmentRepo),
	}
}
