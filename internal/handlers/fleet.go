package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ukydev/fleet-ops/internal/db"
	"github.com/ukydev/fleet-ops/internal/models"
)

func (s *Server) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.svc.Fleet.List(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicles)
}

func (s *Server) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	vehicle, err := s.svc.Fleet.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

func (s *Server) handleCreateVehicle(w http.ResponseWriter, r *http.Request) {
	var v models.Vehicle
	if !decodeBody(w, r, &v) {
		return
	}
	created, err := s.svc.Fleet.Create(r.Context(), v)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// vehiclePatchRequest mirrors db.VehiclePatch on the wire; absent fields
// stay untouched.
type vehiclePatchRequest struct {
	Status          *models.VehicleStatus `json:"status"`
	HealthScore     *float64              `json:"healthScore"`
	LastLocation    *models.Location      `json:"lastLocation"`
	Maintenance     *models.Maintenance   `json:"maintenance"`
	OpenAlertsCount *int                  `json:"openAlertsCount"`
}

func (s *Server) handleUpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req vehiclePatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	updated, err := s.svc.Fleet.Update(r.Context(), id, db.VehiclePatch{
		Status:          req.Status,
		HealthScore:     req.HealthScore,
		LastLocation:    req.LastLocation,
		Maintenance:     req.Maintenance,
		OpenAlertsCount: req.OpenAlertsCount,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleUpdateVehicleStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Status models.VehicleStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	updated, err := s.svc.Fleet.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleTelemetrySeries(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	series, err := s.svc.Telemetry.Series(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, series)
}

func (s *Server) handleRecordTelemetry(w http.ResponseWriter, r *http.Request) {
	var ev models.TelemetryEvent
	if !decodeBody(w, r, &ev) {
		return
	}
	recorded, err := s.svc.Telemetry.Record(r.Context(), ev)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, recorded)
}
