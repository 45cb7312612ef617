package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ukydev/fleet-ops/internal/models"
)

func (s *Server) handleMaintenanceQueue(w http.ResponseWriter, r *http.Request) {
	queue, err := s.svc.Maintenance.GetQueue(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, queue)
}

func (s *Server) handleListWorkOrders(w http.ResponseWriter, r *http.Request) {
	vehicleID := r.URL.Query().Get("vehicleId")
	orders, err := s.svc.Maintenance.ListWorkOrders(r.Context(), vehicleID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (s *Server) handleGetWorkOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	order, err := s.svc.Maintenance.GetWorkOrder(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleCreateWorkOrder(w http.ResponseWriter, r *http.Request) {
	var wo models.WorkOrder
	if !decodeBody(w, r, &wo) {
		return
	}
	created, err := s.svc.Maintenance.CreateWorkOrder(r.Context(), wo)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateWorkOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Status models.WorkOrderStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	updated, err := s.svc.Maintenance.UpdateWorkOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
