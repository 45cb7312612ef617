package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ukydev/fleet-ops/internal/models"
)

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	status := models.AlertStatus(r.URL.Query().Get("status"))
	alerts, err := s.svc.Alerts.List(r.Context(), status)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, alerts)
}

func (s *Server) handleGetAlert(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	alert, err := s.svc.Alerts.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, alert)
}

func (s *Server) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var al models.Alert
	if !decodeBody(w, r, &al) {
		return
	}
	created, err := s.svc.Alerts.Create(r.Context(), al)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateAlertStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Status models.AlertStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	updated, err := s.svc.Alerts.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
