package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ukydev/fleet-ops/internal/models"
)

func (s *Server) handleListTenders(w http.ResponseWriter, r *http.Request) {
	status := models.TenderStatus(r.URL.Query().Get("status"))
	tenders, err := s.svc.Tenders.List(r.Context(), status)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tenders)
}

func (s *Server) handleGetTender(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	tender, err := s.svc.Tenders.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tender)
}

func (s *Server) handleCreateTender(w http.ResponseWriter, r *http.Request) {
	var tn models.Tender
	if !decodeBody(w, r, &tn) {
		return
	}
	created, err := s.svc.Tenders.Create(r.Context(), tn)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTenderStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Status models.TenderStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	updated, err := s.svc.Tenders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
