package models

import "time"

// ShiftStatus tracks a shift through its day.
// planned -> active on check-in, active -> done on checkout; missed is only
// reachable by direct data mutation, never by a defined transition rule.
type ShiftStatus string

const (
	ShiftPlanned ShiftStatus = "planned"
	ShiftActive  ShiftStatus = "active"
	ShiftDone    ShiftStatus = "done"
	ShiftMissed  ShiftStatus = "missed"
)

// IsValidShiftStatus checks if a shift status is valid.
func IsValidShiftStatus(s ShiftStatus) bool {
	switch s {
	case ShiftPlanned, ShiftActive, ShiftDone, ShiftMissed:
		return true
	default:
		return false
	}
}

// TaskStatus is the state of a single shift task.
// todo and done toggle; blocked is a terminal display state reachable only
// via seed or external mutation.
type TaskStatus string

const (
	TaskTodo    TaskStatus = "todo"
	TaskDone    TaskStatus = "done"
	TaskBlocked TaskStatus = "blocked"
)

// UpdateType classifies a shift update log entry.
type UpdateType string

const (
	UpdateCheckin  UpdateType = "checkin"
	UpdateProgress UpdateType = "progress"
	UpdateBlocker  UpdateType = "blocker"
	UpdateCheckout UpdateType = "checkout"
)

// Shift binds a project, site and team for one calendar date.
type Shift struct {
	ID               string      `json:"id"`
	Date             string      `json:"date"` // "2006-01-02"
	ProjectID        string      `json:"projectId"`
	SiteID           string      `json:"siteId"`
	TeamID           string      `json:"teamId"`
	PlannedStart     string      `json:"plannedStart"` // "15:04"
	PlannedEnd       string      `json:"plannedEnd"`
	ActualStart      string      `json:"actualStart,omitempty"`
	ActualEnd        string      `json:"actualEnd,omitempty"`
	HeadcountPlanned int         `json:"headcountPlanned"`
	HeadcountActual  *int        `json:"headcountActual,omitempty"`
	Status           ShiftStatus `json:"status"`
	LastUpdateAt     time.Time   `json:"lastUpdateAt"`
}

// ShiftTask belongs to exactly one shift. Tasks carry no ordering or
// dependencies between each other.
type ShiftTask struct {
	ID      string     `json:"id"`
	ShiftID string     `json:"shiftId"`
	Title   string     `json:"title"`
	Status  TaskStatus `json:"status"`
	Notes   string     `json:"notes,omitempty"`
}

// ShiftUpdate is an append-only log entry for a shift. Updates are never
// mutated or deleted.
type ShiftUpdate struct {
	ID        string     `json:"id"`
	ShiftID   string     `json:"shiftId"`
	CreatedAt time.Time  `json:"createdAt"`
	Type      UpdateType `json:"type"`
	Message   string     `json:"message"`
	Headcount *int       `json:"headcount,omitempty"`
}
