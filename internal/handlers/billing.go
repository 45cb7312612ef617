package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ukydev/fleet-ops/internal/models"
)

func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := s.svc.Billing.ListInvoices(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, invoices)
}

func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	invoice, err := s.svc.Billing.GetInvoice(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, invoice)
}

func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	var inv models.Invoice
	if !decodeBody(w, r, &inv) {
		return
	}
	created, err := s.svc.Billing.CreateInvoice(r.Context(), inv)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Status models.InvoiceStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	updated, err := s.svc.Billing.UpdateInvoiceStatus(r.Context(), id, req.Status)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleBillingSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.Billing.Summary(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
