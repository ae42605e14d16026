package http

import (
	"net/http"

	"clinic-agenda/internal/delivery/http/handler"
	"clinic-agenda/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	patientHandler      *handler.PatientHandler
	appointmentHandler  *handler.AppointmentHandler
	dashboardHandler    *handler.DashboardHandler
	backupHandler       *handler.BackupHandler
	corsMiddleware      *middleware.CORSMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
}

func NewRouter(
	patientHandler *handler.PatientHandler,
	appointmentHandler *handler.AppointmentHandler,
	dashboardHandler *handler.DashboardHandler,
	backupHandler *handler.BackupHandler,
	corsMiddleware *middleware.CORSMiddleware,
	requestIDMiddleware *middleware.RequestIDMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		patientHandler:      patientHandler,
		appointmentHandler:  appointmentHandler,
		dashboardHandler:    dashboardHandler,
		backupHandler:       backupHandler,
		corsMiddleware:      corsMiddleware,
		requestIDMiddleware: requestIDMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Patients
	api.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	api.HandleFunc("/patients", r.patientHandler.ListPatients).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	api.HandleFunc("/patients/{id}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)
	api.HandleFunc("/patients/{id}/appointments", r.patientHandler.GetPatientAppointments).Methods(http.MethodGet)

	// Appointments. Fixed segments are registered before {id} so mux does
	// not swallow them as ids.
	api.HandleFunc("/appointments/upcoming", r.appointmentHandler.GetUpcomingAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments/today", r.appointmentHandler.GetTodayAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	api.HandleFunc("/appointments", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)
	api.HandleFunc("/appointments/{id}/confirmation-link", r.appointmentHandler.GetConfirmationLink).Methods(http.MethodGet)

	// Dashboard
	api.HandleFunc("/dashboard/stats", r.dashboardHandler.GetStats).Methods(http.MethodGet)

	// Backup
	api.HandleFunc("/export", r.backupHandler.Export).Methods(http.MethodGet)
	api.HandleFunc("/import", r.backupHandler.Import).Methods(http.MethodPost)
	api.HandleFunc("/reset", r.backupHandler.Reset).Methods(http.MethodPost)

	// Middleware
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.requestIDMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
