package db

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-ops/internal/auth"
	"github.com/ukydev/fleet-ops/internal/kv"
)

// Options configures service behavior.
type Options struct {
	// StrictRefs makes shift creation verify that the referenced project,
	// site and team exist.
	StrictRefs bool
	// TelemetryMode selects synthesized or persisted telemetry series.
	TelemetryMode TelemetryMode
}

// Service bundles every domain collection over one kv backend. Handlers and
// CLI commands depend on this, never on the backend directly.
type Service struct {
	Fleet       *FleetCollection
	Telemetry   *TelemetryCollection
	Alerts      *AlertCollection
	Maintenance *MaintenanceCollection
	Projects    *ProjectCollection
	Teams       *TeamCollection
	Shifts      *ShiftCollection
	Billing     *BillingCollection
	Tenders     *TenderCollection
	Session     *SessionStore

	store kv.Store
}

// New wires a service over the given store.
func New(store kv.Store, authService *auth.Service, opts Options) *Service {
	fleet := NewFleetCollection(store)
	projects := NewProjectCollection(store)
	teams := NewTeamCollection(store)

	return &Service{
		Fleet:       fleet,
		Telemetry:   NewTelemetryCollection(store, opts.TelemetryMode),
		Alerts:      NewAlertCollection(store),
		Maintenance: NewMaintenanceCollection(store, fleet),
		Projects:    projects,
		Teams:       teams,
		Shifts:      NewShiftCollection(store, projects, teams, opts.StrictRefs),
		Billing:     NewBillingCollection(store),
		Tenders:     NewTenderCollection(store),
		Session:     NewSessionStore(store, authService),
		store:       store,
	}
}

// Seed overwrites every collection with its fixture data. Existing records
// are lost, so this is an explicit operation rather than something reads do.
func (s *Service) Seed(ctx context.Context) error {
	resets := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"vehicles", s.Fleet.vehicles.reset},
		{"telemetry", s.Telemetry.Reset},
		{"alerts", s.Alerts.alerts.reset},
		{"work orders", s.Maintenance.orders.reset},
		{"projects", s.Projects.projects.reset},
		{"sites", s.Projects.sites.reset},
		{"teams", s.Teams.teams.reset},
		{"shifts", s.Shifts.shifts.reset},
		{"shift tasks", s.Shifts.tasks.reset},
		{"shift updates", s.Shifts.updates.reset},
		{"invoices", s.Billing.invoices.reset},
		{"tenders", s.Tenders.tenders.reset},
		{"users", s.Session.resetUsers},
	}
	for _, r := range resets {
		if err := r.fn(ctx); err != nil {
			return err
		}
		log.WithField("collection", r.name).Debug("collection seeded")
	}
	return nil
}
