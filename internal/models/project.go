package models

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
)

// Project is a client engagement that sites and shifts hang off.
type Project struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	ClientName string        `json:"clientName"`
	Status     ProjectStatus `json:"status"`
}

// Site is a work location belonging to exactly one project.
type Site struct {
	ID        string  `json:"id"`
	ProjectID string  `json:"projectId"`
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}

// Team is a named crew with a leader and a default headcount.
// Teams are not bound to a project or site; shifts join all three.
type Team struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	LeaderName       string `json:"leaderName"`
	DefaultHeadcount int    `json:"defaultHeadcount"`
}
