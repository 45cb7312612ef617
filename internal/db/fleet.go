package db

import (
	"context"
	"time"

	"github.com/ukydev/fleet-ops/internal/fixtures"
	"github.com/ukydev/fleet-ops/internal/kv"
	"github.com/ukydev/fleet-ops/internal/models"
)

// FleetCollection provides access to the vehicle collection.
type FleetCollection struct {
	vehicles *collection[models.Vehicle]
}

// NewFleetCollection creates a fleet collection over the given store.
func NewFleetCollection(store kv.Store) *FleetCollection {
	return &FleetCollection{
		vehicles: &collection[models.Vehicle]{
			store: store,
			key:   keyVehicles,
			kind:  "vehicle",
			seed:  fixtures.Vehicles,
			id:    func(v models.Vehicle) string { return v.ID },
		},
	}
}

// List returns every vehicle, seeding from fixtures on first access.
func (f *FleetCollection) List(ctx context.Context) ([]models.Vehicle, error) {
	return f.vehicles.List(ctx)
}

// GetByID returns the vehicle with the given id, or a NotFoundError.
func (f *FleetCollection) GetByID(ctx context.Context, id string) (models.Vehicle, error) {
	return f.vehicles.getByID(ctx, id)
}

// Create registers a new vehicle, assigning an id and defaults for omitted
// fields, and returns the stored record.
func (f *FleetCollection) Create(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	if v.AssetCode == "" {
		return models.Vehicle{}, ValidationError{Field: "assetCode", Reason: "required"}
	}
	if v.ID == "" {
		v.ID = newID("veh")
	}
	if v.Status == "" {
		v.Status = models.VehicleActive
	}
	if !models.IsValidVehicleStatus(v.Status) {
		return models.Vehicle{}, ValidationError{Field: "status", Reason: "unknown vehicle status " + string(v.Status)}
	}
	if v.Maintenance.DueState == "" {
		v.Maintenance.DueState = models.DueOK
	}
	if v.LastUpdate.IsZero() {
		v.LastUpdate = time.Now().UTC()
	}
	if err := f.vehicles.append(ctx, v); err != nil {
		return models.Vehicle{}, err
	}
	return v, nil
}

// VehiclePatch is a partial vehicle update; nil fields are left untouched.
type VehiclePatch struct {
	Status          *models.VehicleStatus
	HealthScore     *float64
	LastLocation    *models.Location
	Maintenance     *models.Maintenance
	OpenAlertsCount *int
}

// UpdateStatus moves the vehicle to the given operational status.
func (f *FleetCollection) UpdateStatus(ctx context.Context, id string, status models.VehicleStatus) (models.Vehicle, error) {
	return f.Update(ctx, id, VehiclePatch{Status: &status})
}

// Update merges the patch into the matching vehicle and returns the updated
// record. Missing ids return a NotFoundError.
func (f *FleetCollection) Update(ctx context.Context, id string, patch VehiclePatch) (models.Vehicle, error) {
	if patch.Status != nil && !models.IsValidVehicleStatus(*patch.Status) {
		return models.Vehicle{}, ValidationError{Field: "status", Reason: "unknown vehicle status " + string(*patch.Status)}
	}
	return f.vehicles.patch(ctx, id, func(v *models.Vehicle) {
		if patch.Status != nil {
			v.Status = *patch.Status
		}
		if patch.HealthScore != nil {
			v.HealthScore = *patch.HealthScore
		}
		if patch.LastLocation != nil {
			v.LastLocation = *patch.LastLocation
		}
		if patch.Maintenance != nil {
			v.Maintenance = *patch.Maintenance
		}
		if patch.OpenAlertsCount != nil {
			v.OpenAlertsCount = *patch.OpenAlertsCount
		}
		v.LastUpdate = time.Now().UTC()
	})
}
