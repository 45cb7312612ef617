package db

import (
	"context"
	"time"

	"github.com/ukydev/fleet-ops/internal/fixtures"
	"github.com/ukydev/fleet-ops/internal/kv"
	"github.com/ukydev/fleet-ops/internal/models"
)

// ShiftCollection provides access to shifts, their tasks, and their
// append-only update log.
type ShiftCollection struct {
	shifts  *collection[models.Shift]
	tasks   *collection[models.ShiftTask]
	updates *collection[models.ShiftUpdate]

	// strict reference checking on create; off by default to match the
	// permissive historical contract.
	strictRefs bool
	projects   *ProjectCollection
	teams      *TeamCollection

	now func() time.Time
}

// NewShiftCollection creates a shift collection over the given store. When
// strictRefs is true, creates verify that the referenced project, site and
// team exist.
func NewShiftCollection(store kv.Store, projects *ProjectCollection, teams *TeamCollection, strictRefs bool) *ShiftCollection {
	return &ShiftCollection{
		shifts: &collection[models.Shift]{
			store: store,
			key:   keyShifts,
			kind:  "shift",
			seed:  fixtures.Shifts,
			id:    func(s models.Shift) string { return s.ID },
		},
		tasks: &collection[models.ShiftTask]{
			store: store,
			key:   keyTasks,
			kind:  "shift task",
			seed:  fixtures.ShiftTasks,
			id:    func(t models.ShiftTask) string { return t.ID },
		},
		updates: &collection[models.ShiftUpdate]{
			store: store,
			key:   keyUpdates,
			kind:  "shift update",
			seed:  fixtures.ShiftUpdates,
			id:    func(u models.ShiftUpdate) string { return u.ID },
		},
		strictRefs: strictRefs,
		projects:   projects,
		teams:      teams,
		now:        time.Now,
	}
}

// ListByDate returns the shifts planned for a calendar date ("2006-01-02").
// An empty date returns every shift.
func (s *ShiftCollection) ListByDate(ctx context.Context, date string) ([]models.Shift, error) {
	if date == "" {
		return s.shifts.List(ctx)
	}
	return s.shifts.filter(ctx, func(sh models.Shift) bool {
		return sh.Date == date
	})
}

// GetByID returns one shift by id, or a NotFoundError.
func (s *ShiftCollection) GetByID(ctx context.Context, id string) (models.Shift, error) {
	return s.shifts.getByID(ctx, id)
}

// Create plans a new shift. Date, project, site and team references are
// required; a shift without a team is rejected rather than silently stored
// with a dangling reference.
func (s *ShiftCollection) Create(ctx context.Context, sh models.Shift) (models.Shift, error) {
	switch {
	case sh.Date == "":
		return models.Shift{}, ValidationError{Field: "date", Reason: "required"}
	case sh.ProjectID == "":
		return models.Shift{}, ValidationError{Field: "projectId", Reason: "required"}
	case sh.SiteID == "":
		return models.Shift{}, ValidationError{Field: "siteId", Reason: "required"}
	case sh.TeamID == "":
		return models.Shift{}, ValidationError{Field: "teamId", Reason: "required"}
	}
	if s.strictRefs {
		if _, err := s.projects.GetByID(ctx, sh.ProjectID); err != nil {
			return models.Shift{}, ValidationError{Field: "projectId", Reason: "project does not exist: " + sh.ProjectID}
		}
		if _, err := s.projects.GetSite(ctx, sh.SiteID); err != nil {
			return models.Shift{}, ValidationError{Field: "siteId", Reason: "site does not exist: " + sh.SiteID}
		}
		if _, err := s.teams.GetByID(ctx, sh.TeamID); err != nil {
			return models.Shift{}, ValidationError{Field: "teamId", Reason: "team does not exist: " + sh.TeamID}
		}
	}
	if sh.ID == "" {
		sh.ID = newID("sh")
	}
	sh.Status = models.ShiftPlanned
	sh.ActualStart = ""
	sh.ActualEnd = ""
	sh.LastUpdateAt = s.now().UTC()
	if err := s.shifts.append(ctx, sh); err != nil {
		return models.Shift{}, err
	}
	return sh, nil
}

// ShiftPatch is a partial shift update; nil fields are left untouched.
type ShiftPatch struct {
	PlannedStart     *string
	PlannedEnd       *string
	ActualStart      *string
	ActualEnd        *string
	HeadcountPlanned *int
	HeadcountActual  *int
	Status           *models.ShiftStatus
}

// Update merges the patch into the matching shift, stamps LastUpdateAt, and
// returns the updated record.
func (s *ShiftCollection) Update(ctx context.Context, id string, patch ShiftPatch) (models.Shift, error) {
	if patch.Status != nil && !models.IsValidShiftStatus(*patch.Status) {
		return models.Shift{}, ValidationError{Field: "status", Reason: "unknown shift status " + string(*patch.Status)}
	}
	return s.shifts.patch(ctx, id, func(sh *models.Shift) {
		if patch.PlannedStart != nil {
			sh.PlannedStart = *patch.PlannedStart
		}
		if patch.PlannedEnd != nil {
			sh.PlannedEnd = *patch.PlannedEnd
		}
		if patch.ActualStart != nil {
			sh.ActualStart = *patch.ActualStart
		}
		if patch.ActualEnd != nil {
			sh.ActualEnd = *patch.ActualEnd
		}
		if patch.HeadcountPlanned != nil {
			sh.HeadcountPlanned = *patch.HeadcountPlanned
		}
		if patch.HeadcountActual != nil {
			sh.HeadcountActual = patch.HeadcountActual
		}
		if patch.Status != nil {
			sh.Status = *patch.Status
		}
		sh.LastUpdateAt = s.now().UTC()
	})
}

// CheckIn marks the team arrived: the shift goes active, ActualStart is
// stamped, and a checkin entry lands in the update log.
func (s *ShiftCollection) CheckIn(ctx context.Context, id string, headcount *int) (models.Shift, error) {
	now := s.now().UTC()
	sh, err := s.shifts.patch(ctx, id, func(sh *models.Shift) {
		sh.Status = models.ShiftActive
		sh.ActualStart = now.Format("15:04")
		if headcount != nil {
			sh.HeadcountActual = headcount
		}
		sh.LastUpdateAt = now
	})
	if err != nil {
		return models.Shift{}, err
	}
	_, err = s.AddUpdate(ctx, models.ShiftUpdate{
		ShiftID:   id,
		Type:      models.UpdateCheckin,
		Message:   "Team arrived on site.",
		Headcount: headcount,
	})
	return sh, err
}

// CheckOut marks the shift finished: status done, ActualEnd stamped, and a
// checkout entry appended to the update log.
func (s *ShiftCollection) CheckOut(ctx context.Context, id string, headcount *int) (models.Shift, error) {
	now := s.now().UTC()
	sh, err := s.shifts.patch(ctx, id, func(sh *models.Shift) {
		sh.Status = models.ShiftDone
		sh.ActualEnd = now.Format("15:04")
		if headcount != nil {
			sh.HeadcountActual = headcount
		}
		sh.LastUpdateAt = now
	})
	if err != nil {
		return models.Shift{}, err
	}
	_, err = s.AddUpdate(ctx, models.ShiftUpdate{
		ShiftID:   id,
		Type:      models.UpdateCheckout,
		Message:   "Team checked out.",
		Headcount: headcount,
	})
	return sh, err
}

// ListTasks returns the tasks belonging to one shift.
func (s *ShiftCollection) ListTasks(ctx context.Context, shiftID string) ([]models.ShiftTask, error) {
	if shiftID == "" {
		return s.tasks.List(ctx)
	}
	return s.tasks.filter(ctx, func(t models.ShiftTask) bool {
		return t.ShiftID == shiftID
	})
}

// CreateTask adds a task to a shift.
func (s *ShiftCollection) CreateTask(ctx context.Context, t models.ShiftTask) (models.ShiftTask, error) {
	if t.ShiftID == "" {
		return models.ShiftTask{}, ValidationError{Field: "shiftId", Reason: "required"}
	}
	if t.Title == "" {
		return models.ShiftTask{}, ValidationError{Field: "title", Reason: "required"}
	}
	if t.ID == "" {
		t.ID = newID("tk")
	}
	if t.Status == "" {
		t.Status = models.TaskTodo
	}
	if err := s.tasks.append(ctx, t); err != nil {
		return models.ShiftTask{}, err
	}
	return t, nil
}

// UpdateTaskStatus sets a task's status. Tasks toggle between todo and
// done; blocked is accepted for seed parity.
func (s *ShiftCollection) UpdateTaskStatus(ctx context.Context, taskID string, status models.TaskStatus) (models.ShiftTask, error) {
	switch status {
	case models.TaskTodo, models.TaskDone, models.TaskBlocked:
	default:
		return models.ShiftTask{}, ValidationError{Field: "status", Reason: "unknown task status " + string(status)}
	}
	return s.tasks.patch(ctx, taskID, func(t *models.ShiftTask) {
		t.Status = status
	})
}

// ListUpdates returns the update log for one shift, oldest first.
func (s *ShiftCollection) ListUpdates(ctx context.Context, shiftID string) ([]models.ShiftUpdate, error) {
	if shiftID == "" {
		return s.updates.List(ctx)
	}
	return s.updates.filter(ctx, func(u models.ShiftUpdate) bool {
		return u.ShiftID == shiftID
	})
}

// AddUpdate appends an entry to a shift's update log. The log is
// append-only; entries are never mutated or deleted.
func (s *ShiftCollection) AddUpdate(ctx context.Context, u models.ShiftUpdate) (models.ShiftUpdate, error) {
	if u.ShiftID == "" {
		return models.ShiftUpdate{}, ValidationError{Field: "shiftId", Reason: "required"}
	}
	switch u.Type {
	case models.UpdateCheckin, models.UpdateProgress, models.UpdateBlocker, models.UpdateCheckout:
	default:
		return models.ShiftUpdate{}, ValidationError{Field: "type", Reason: "unknown update type " + string(u.Type)}
	}
	if u.Message == "" {
		return models.ShiftUpdate{}, ValidationError{Field: "message", Reason: "required"}
	}
	if u.ID == "" {
		u.ID = newID("up")
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now().UTC()
	}
	if err := s.updates.append(ctx, u); err != nil {
		return models.ShiftUpdate{}, err
	}
	return u, nil
}

// ShiftSummary aggregates one day's shift board for the teams dashboard.
type ShiftSummary struct {
	Date            string `json:"date"`
	ActiveCrews     int    `json:"activeCrews"`
	TotalHeadcount  int    `json:"totalHeadcount"`
	MissingCheckins int    `json:"missingCheckins"`
	DoneShifts      int    `json:"doneShifts"`
}

// DashboardSummary computes the day's aggregates: crews on site, headcount
// (actual when checked in, planned otherwise), and shifts still awaiting
// check-in.
func (s *ShiftCollection) DashboardSummary(ctx context.Context, date string) (ShiftSummary, error) {
	shifts, err := s.ListByDate(ctx, date)
	if err != nil {
		return ShiftSummary{}, err
	}
	summary := ShiftSummary{Date: date}
	for _, sh := range shifts {
		switch sh.Status {
		case models.ShiftActive:
			summary.ActiveCrews++
		case models.ShiftPlanned:
			summary.MissingCheckins++
		case models.ShiftDone:
			summary.DoneShifts++
		}
		if sh.HeadcountActual != nil {
			summary.TotalHeadcount += *sh.HeadcountActual
		} else {
			summary.TotalHeadcount += sh.HeadcountPlanned
		}
	}
	return summary, nil
}
