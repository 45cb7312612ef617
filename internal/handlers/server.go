// Package handlers exposes the domain collections over HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-ops/internal/auth"
	"github.com/ukydev/fleet-ops/internal/db"
	"github.com/ukydev/fleet-ops/internal/kv"
	"github.com/ukydev/fleet-ops/internal/middleware"
	"github.com/ukydev/fleet-ops/internal/models"
)

// Server represents the API server
type Server struct {
	svc    *db.Service
	auth   *auth.Service
	router *mux.Router
}

// NewServer creates a new API server
func NewServer(svc *db.Service, authService *auth.Service) *Server {
	s := &Server{
		svc:    svc,
		auth:   authService,
		router: mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Auth endpoints
	s.router.HandleFunc("/api/auth/login", s.handleLogin).Methods("POST")
	s.router.HandleFunc("/api/auth/logout", s.handleLogout).Methods("POST")
	s.router.HandleFunc("/api/auth/me", s.handleCurrentUser).Methods("GET")
	s.router.HandleFunc("/api/auth/language", s.handleGetLanguage).Methods("GET")
	s.router.HandleFunc("/api/auth/language", s.handleSetLanguage).Methods("PUT")

	// Fleet endpoints
	s.router.HandleFunc("/api/fleet/vehicles", s.handleListVehicles).Methods("GET")
	s.router.HandleFunc("/api/fleet/vehicles", s.handleCreateVehicle).Methods("POST")
	s.router.HandleFunc("/api/fleet/vehicles/{id}", s.handleGetVehicle).Methods("GET")
	s.router.HandleFunc("/api/fleet/vehicles/{id}", s.handleUpdateVehicle).Methods("PATCH")
	s.router.HandleFunc("/api/fleet/vehicles/{id}/status", s.handleUpdateVehicleStatus).Methods("PUT")
	s.router.HandleFunc("/api/fleet/vehicles/{id}/telemetry", s.handleTelemetrySeries).Methods("GET")
	s.router.HandleFunc("/api/fleet/telemetry", s.handleRecordTelemetry).Methods("POST")

	// Maintenance endpoints
	s.router.HandleFunc("/api/maintenance/queue", s.handleMaintenanceQueue).Methods("GET")
	s.router.HandleFunc("/api/maintenance/workorders", s.handleListWorkOrders).Methods("GET")
	s.router.HandleFunc("/api/maintenance/workorders", s.handleCreateWorkOrder).Methods("POST")
	s.router.HandleFunc("/api/maintenance/workorders/{id}", s.handleGetWorkOrder).Methods("GET")
	s.router.HandleFunc("/api/maintenance/workorders/{id}/status", s.handleUpdateWorkOrderStatus).Methods("PUT")

	// Alert endpoints
	s.router.HandleFunc("/api/alerts", s.handleListAlerts).Methods("GET")
	s.router.HandleFunc("/api/alerts", s.handleCreateAlert).Methods("POST")
	s.router.HandleFunc("/api/alerts/{id}", s.handleGetAlert).Methods("GET")
	s.router.HandleFunc("/api/alerts/{id}/status", s.handleUpdateAlertStatus).Methods("PUT")

	// Operations endpoints
	s.router.HandleFunc("/api/projects", s.handleListProjects).Methods("GET")
	s.router.HandleFunc("/api/projects/{id}", s.handleGetProject).Methods("GET")
	s.router.HandleFunc("/api/sites", s.handleListSites).Methods("GET")
	s.router.HandleFunc("/api/teams", s.handleListTeams).Methods("GET")
	s.router.HandleFunc("/api/shifts", s.handleListShifts).Methods("GET")
	s.router.HandleFunc("/api/shifts", s.handleCreateShift).Methods("POST")
	s.router.HandleFunc("/api/shifts/summary", s.handleShiftSummary).Methods("GET")
	s.router.HandleFunc("/api/shifts/{id}", s.handleGetShift).Methods("GET")
	s.router.HandleFunc("/api/shifts/{id}", s.handleUpdateShift).Methods("PATCH")
	s.router.HandleFunc("/api/shifts/{id}/checkin", s.handleCheckIn).Methods("POST")
	s.router.HandleFunc("/api/shifts/{id}/checkout", s.handleCheckOut).Methods("POST")
	s.router.HandleFunc("/api/shifts/{id}/tasks", s.handleListTasks).Methods("GET")
	s.router.HandleFunc("/api/shifts/{id}/tasks", s.handleCreateTask).Methods("POST")
	s.router.HandleFunc("/api/shifts/tasks/{taskId}/status", s.handleUpdateTaskStatus).Methods("PUT")
	s.router.HandleFunc("/api/shifts/{id}/updates", s.handleListUpdates).Methods("GET")
	s.router.HandleFunc("/api/shifts/{id}/updates", s.handleAddUpdate).Methods("POST")

	// Billing endpoints
	s.router.HandleFunc("/api/billing/invoices", s.handleListInvoices).Methods("GET")
	s.router.HandleFunc("/api/billing/invoices", s.handleCreateInvoice).Methods("POST")
	s.router.HandleFunc("/api/billing/invoices/{id}", s.handleGetInvoice).Methods("GET")
	s.router.HandleFunc("/api/billing/invoices/{id}/status", s.handleUpdateInvoiceStatus).Methods("PUT")
	s.router.HandleFunc("/api/billing/summary", s.handleBillingSummary).Methods("GET")

	// Tender endpoints
	s.router.HandleFunc("/api/tenders", s.handleListTenders).Methods("GET")
	s.router.HandleFunc("/api/tenders", s.handleCreateTender).Methods("POST")
	s.router.HandleFunc("/api/tenders/{id}", s.handleGetTender).Methods("GET")
	s.router.HandleFunc("/api/tenders/{id}/status", s.handleUpdateTenderStatus).Methods("PUT")

	// Seeding wipes every collection, so only admins may trigger it.
	authMW := middleware.NewAuthMiddleware(s.auth)
	s.router.Handle("/api/admin/seed",
		authMW.RequireRole(models.RoleAdmin)(http.HandlerFunc(s.handleSeed))).Methods("POST")

	// Add middleware
	s.router.Use(loggingMiddleware)
	s.router.Use(jsonMiddleware)
}

// Router returns the configured router
func (s *Server) Router() *mux.Router {
	return s.router
}

// Per-IP rate limit applied ahead of authentication.
const (
	rateLimitRequests = 120
	rateLimitWindow   = 60 // seconds
)

// Handler returns the router wrapped in rate limiting and JWT authentication.
func (s *Server) Handler() http.Handler {
	authMW := middleware.NewAuthMiddleware(s.auth)
	limiter := middleware.NewRateLimitMiddleware()
	return limiter.RateLimit(rateLimitRequests, rateLimitWindow)(authMW.Authenticate(s.router))
}

// Middleware
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Info("request handled")
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Response helpers
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: false, Error: message})
}

// respondDomainError maps the error taxonomy onto HTTP statuses.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case db.IsNotFound(err):
		respondError(w, http.StatusNotFound, err.Error())
	case db.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, kv.ErrUnavailable), errors.Is(err, kv.ErrCorrupt):
		log.WithError(err).Error("storage failure")
		respondError(w, http.StatusServiceUnavailable, "storage unavailable")
	default:
		log.WithError(err).Error("unhandled request error")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// Handlers
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Seed(r.Context()); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "seeded"})
}
