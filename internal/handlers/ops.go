package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ukydev/fleet-ops/internal/db"
	"github.com/ukydev/fleet-ops/internal/models"
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.svc.Projects.List(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	project, err := s.svc.Projects.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (s *Server) handleListSites(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("projectId")
	sites, err := s.svc.Projects.ListSites(r.Context(), projectID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sites)
}

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.svc.Teams.List(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, teams)
}

func (s *Server) handleListShifts(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	shifts, err := s.svc.Shifts.ListByDate(r.Context(), date)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shifts)
}

func (s *Server) handleGetShift(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	shift, err := s.svc.Shifts.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shift)
}

func (s *Server) handleCreateShift(w http.ResponseWriter, r *http.Request) {
	var sh models.Shift
	if !decodeBody(w, r, &sh) {
		return
	}
	created, err := s.svc.Shifts.Create(r.Context(), sh)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// shiftPatchRequest mirrors db.ShiftPatch on the wire.
type shiftPatchRequest struct {
	PlannedStart     *string             `json:"plannedStart"`
	PlannedEnd       *string             `json:"plannedEnd"`
	ActualStart      *string             `json:"actualStart"`
	ActualEnd        *string             `json:"actualEnd"`
	HeadcountPlanned *int                `json:"headcountPlanned"`
	HeadcountActual  *int                `json:"headcountActual"`
	Status           *models.ShiftStatus `json:"status"`
}

func (s *Server) handleUpdateShift(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req shiftPatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	updated, err := s.svc.Shifts.Update(r.Context(), id, db.ShiftPatch{
		PlannedStart:     req.PlannedStart,
		PlannedEnd:       req.PlannedEnd,
		ActualStart:      req.ActualStart,
		ActualEnd:        req.ActualEnd,
		HeadcountPlanned: req.HeadcountPlanned,
		HeadcountActual:  req.HeadcountActual,
		Status:           req.Status,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Headcount *int `json:"headcount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	shift, err := s.svc.Shifts.CheckIn(r.Context(), id, req.Headcount)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shift)
}

func (s *Server) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Headcount *int `json:"headcount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	shift, err := s.svc.Shifts.CheckOut(r.Context(), id, req.Headcount)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shift)
}

func (s *Server) handleShiftSummary(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	summary, err := s.svc.Shifts.DashboardSummary(r.Context(), date)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	shiftID := mux.Vars(r)["id"]
	tasks, err := s.svc.Shifts.ListTasks(r.Context(), shiftID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var t models.ShiftTask
	if !decodeBody(w, r, &t) {
		return
	}
	t.ShiftID = mux.Vars(r)["id"]
	created, err := s.svc.Shifts.CreateTask(r.Context(), t)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskId"]
	var req struct {
		Status models.TaskStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	updated, err := s.svc.Shifts.UpdateTaskStatus(r.Context(), taskID, req.Status)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleListUpdates(w http.ResponseWriter, r *http.Request) {
	shiftID := mux.Vars(r)["id"]
	updates, err := s.svc.Shifts.ListUpdates(r.Context(), shiftID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updates)
}

func (s *Server) handleAddUpdate(w http.ResponseWriter, r *http.Request) {
	var u models.ShiftUpdate
	if !decodeBody(w, r, &u) {
		return
	}
	u.ShiftID = mux.Vars(r)["id"]
	added, err := s.svc.Shifts.AddUpdate(r.Context(), u)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, added)
}
