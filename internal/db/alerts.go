package db

import (
	"context"
	"time"

	"github.com/ukydev/fleet-ops/internal/fixtures"
	"github.com/ukydev/fleet-ops/internal/kv"
	"github.com/ukydev/fleet-ops/internal/models"
)

// AlertCollection provides access to the alert collection.
type AlertCollection struct {
	alerts *collection[models.Alert]
}

// NewAlertCollection creates an alert collection over the given store.
func NewAlertCollection(store kv.Store) *AlertCollection {
	return &AlertCollection{
		alerts: &collection[models.Alert]{
			store: store,
			key:   keyAlerts,
			kind:  "alert",
			seed:  fixtures.Alerts,
			id:    func(a models.Alert) string { return a.ID },
		},
	}
}

// List returns alerts, filtered to one status when status is non-empty.
func (a *AlertCollection) List(ctx context.Context, status models.AlertStatus) ([]models.Alert, error) {
	if status == "" {
		return a.alerts.List(ctx)
	}
	if !models.IsValidAlertStatus(status) {
		return nil, ValidationError{Field: "status", Reason: "unknown alert status " + string(status)}
	}
	return a.alerts.filter(ctx, func(al models.Alert) bool {
		return al.Status == status
	})
}

// GetByID returns one alert by id, or a NotFoundError.
func (a *AlertCollection) GetByID(ctx context.Context, id string) (models.Alert, error) {
	return a.alerts.getByID(ctx, id)
}

// Create raises a new alert. Either a vehicle or a shift reference is
// required; severity defaults to low and status to open.
func (a *AlertCollection) Create(ctx context.Context, al models.Alert) (models.Alert, error) {
	if al.VehicleID == "" && al.ShiftID == "" {
		return models.Alert{}, ValidationError{Field: "vehicleId", Reason: "alert needs a vehicle or shift reference"}
	}
	if al.Title == "" {
		return models.Alert{}, ValidationError{Field: "title", Reason: "required"}
	}
	if al.ID == "" {
		al.ID = newID("al")
	}
	if al.Severity == "" {
		al.Severity = models.SeverityLow
	}
	if al.Status == "" {
		al.Status = models.AlertOpen
	}
	if al.CreatedAt.IsZero() {
		al.CreatedAt = time.Now().UTC()
	}
	if err := a.alerts.append(ctx, al); err != nil {
		return models.Alert{}, err
	}
	return al, nil
}

// UpdateStatus moves an alert to a new status. Closed alerts are terminal:
// open -> acked -> closed and open -> closed are the permitted moves.
func (a *AlertCollection) UpdateStatus(ctx context.Context, id string, status models.AlertStatus) (models.Alert, error) {
	if !models.IsValidAlertStatus(status) {
		return models.Alert{}, ValidationError{Field: "status", Reason: "unknown alert status " + string(status)}
	}
	current, err := a.alerts.getByID(ctx, id)
	if err != nil {
		return models.Alert{}, err
	}
	if current.Status == models.AlertClosed && status != models.AlertClosed {
		return models.Alert{}, ValidationError{Field: "status", Reason: "alert is closed"}
	}
	return a.alerts.patch(ctx, id, func(al *models.Alert) {
		al.Status = status
	})
}
