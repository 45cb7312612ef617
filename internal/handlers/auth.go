package handlers

import (
	"net/http"

	"github.com/ukydev/fleet-ops/internal/models"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := s.svc.Session.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Session.Logout(r.Context()); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.svc.Session.CurrentUser(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleGetLanguage(w http.ResponseWriter, r *http.Request) {
	lang, err := s.svc.Session.Language(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"language": lang})
}

func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.svc.Session.SetLanguage(r.Context(), req.Language); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"language": req.Language})
}
