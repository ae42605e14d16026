package bootstrap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"clinic-agenda/config"
	deliveryHttp "clinic-agenda/internal/delivery/http"
	"clinic-agenda/internal/delivery/http/handler"
	"clinic-agenda/internal/delivery/http/middleware"
	"clinic-agenda/internal/infrastructure/storage"
	"clinic-agenda/internal/repository"
	"clinic-agenda/internal/service"
	"clinic-agenda/internal/usecase"
	"clinic-agenda/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// App holds all dependencies for the application
type App struct {
	Config *config.Config
	Store  storage.Store
	Server *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize storage backend
	store, err := newStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.Store = store
	logrus.Infof("Storage backend ready: %s", cfg.Storage.Backend)

	// Seed missing collections with empty arrays
	if err := repository.Initialize(context.Background(), store); err != nil {
		return nil, fmt.Errorf("failed to initialize collections: %w", err)
	}

	// Initialize all layers
	server := initializeServer(cfg, store)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

func newStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "redis":
		return storage.NewRedisStore(cfg.Redis)
	case "file":
		return storage.NewFileStore(afero.NewOsFs(), cfg.Storage.DataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, store storage.Store) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	patientRepo := repository.NewPatientRepository()
	appointmentRepo := repository.NewAppointmentRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	whatsappService := service.NewWhatsAppService(cfg.WhatsApp.CountryCode)

	// One lock covers both collections: writers (including the
	// patient-deletion cascade) hold it exclusively, and readers that
	// span both collections take the shared side so they never observe
	// a cascade half-applied.
	storeMu := &sync.RWMutex{}

	// Initialize usecases
	patientUsecase := usecase.NewPatientUsecase(store, log, storeMu, patientRepo, appointmentRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(store, log, storeMu, appointmentRepo, patientRepo, whatsappService)
	dashboardUsecase := usecase.NewDashboardUsecase(store, log, storeMu, patientRepo, appointmentRepo)
	backupUsecase := usecase.NewBackupUsecase(store, log, storeMu, patientRepo, appointmentRepo)

	// Initialize handlers
	patientHandler := handler.NewPatientHandler(patientUsecase, appointmentUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)
	backupHandler := handler.NewBackupHandler(backupUsecase)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	requestIDMiddleware := middleware.NewRequestIDMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(patientHandler, appointmentHandler, dashboardHandler, backupHandler, corsMiddleware, requestIDMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes the storage backend when it holds a connection
func (app *App) Close() {
	if closer, ok := app.Store.(io.Closer); ok {
		closer.Close()
	}
}
