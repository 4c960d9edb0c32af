package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kliniki/clinic-api/internal/delivery/http/handler"
	"github.com/kliniki/clinic-api/internal/delivery/http/middleware"
	"github.com/kliniki/clinic-api/internal/domain/entity"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	appointmentHandler  *handler.AppointmentHandler
	availabilityHandler *handler.AvailabilityHandler
	doctorHandler       *handler.DoctorHandler
	patientHandler      *handler.PatientHandler
	historyHandler      *handler.MedicalHistoryHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	availabilityHandler *handler.AvailabilityHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	historyHandler *handler.MedicalHistoryHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		appointmentHandler:  appointmentHandler,
		availabilityHandler: availabilityHandler,
		doctorHandler:       doctorHandler,
		patientHandler:      patientHandler,
		historyHandler:      historyHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

// route binds one endpoint to its allowed-role set. A nil role set means
// the endpoint is public; otherwise the request passes the access gate
// once and the role check once.
type route struct {
	method  string
	path    string
	handler http.HandlerFunc
	roles   []string
}

func (r *Router) Setup() *mux.Router {
	staff := []string{entity.RoleDoctor, entity.RolePatient, entity.RoleSecretary}

	routes := []route{
		// Appointments
		{http.MethodPost, "/appointments", r.appointmentHandler.Book, nil},
		{http.MethodPut, "/appointments/{id}", r.appointmentHandler.Reschedule, staff},
		{http.MethodPatch, "/appointments/{id}/cancel", r.appointmentHandler.Cancel, staff},
		{http.MethodDelete, "/appointments/cancel/{id}", r.appointmentHandler.Delete, []string{entity.RoleDoctor}},
		{http.MethodGet, "/appointments/{id}", r.appointmentHandler.Get, staff},

		// Availabilities
		{http.MethodPost, "/availabilities/upload-doctor-availability-csv/{doctorId}", r.availabilityHandler.UploadCSV, []string{entity.RoleDoctor}},
		{http.MethodPost, "/availabilities/{doctorId}", r.availabilityHandler.AddSlots, []string{entity.RoleDoctor}},
		{http.MethodPatch, "/availabilities/{doctorId}/update", r.availabilityHandler.ReplaceSlots, []string{entity.RoleDoctor}},
		{http.MethodGet, "/availabilities/{doctorId}", r.availabilityHandler.ListSlots, staff},

		// Users
		{http.MethodPost, "/users/signup", r.authHandler.Signup, nil},
		{http.MethodPost, "/users/login", r.authHandler.Login, nil},

		// Doctors
		{http.MethodPost, "/doctors", r.doctorHandler.Create, []string{entity.RoleDoctor}},
		{http.MethodGet, "/doctors", r.doctorHandler.List, staff},
		{http.MethodGet, "/doctors/{id}", r.doctorHandler.Get, staff},

		// Medical histories
		{http.MethodPost, "/medhistories", r.historyHandler.Create, []string{entity.RoleDoctor}},
		{http.MethodPost, "/medhistories/upload-patient-history-csv", r.historyHandler.UploadCSV, []string{entity.RoleDoctor}},
		{http.MethodGet, "/medhistories/patient/{patientId}", r.historyHandler.ListByPatient, []string{entity.RoleDoctor}},
		{http.MethodGet, "/medhistories/registrations/{ssn}", r.historyHandler.GetLatest, []string{entity.RoleDoctor}},
		{http.MethodPatch, "/medhistories/registrations/{ssn}", r.historyHandler.UpdateLatest, []string{entity.RoleDoctor}},
		{http.MethodDelete, "/medhistories/registrations/delete/{ssn}", r.historyHandler.DeleteLatest, []string{entity.RoleDoctor}},

		// Patients
		{http.MethodPost, "/patients/upload-csv", r.patientHandler.UploadCSV, []string{entity.RoleDoctor}},
		{http.MethodGet, "/patients", r.patientHandler.List, []string{entity.RoleDoctor, entity.RoleSecretary}},
		{http.MethodGet, "/patients/{id}", r.patientHandler.Get, []string{entity.RoleDoctor, entity.RoleSecretary}},
		{http.MethodPut, "/patients/{id}", r.patientHandler.Update, []string{entity.RoleSecretary}},
		{http.MethodDelete, "/patients/{id}", r.patientHandler.Delete, []string{entity.RoleSecretary}},
	}

	for _, rt := range routes {
		var h http.Handler = rt.handler
		if rt.roles != nil {
			h = r.authMiddleware.Authenticate(middleware.RequireRoles(rt.roles...)(h))
		}
		r.router.Handle(rt.path, h).Methods(rt.method)
	}

	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
