package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-ops/internal/kv"
	"github.com/ukydev/fleet-ops/internal/models"
)

func TestFleetCollection_Create(t *testing.T) {
	fleet := NewFleetCollection(kv.NewMemory())
	ctx := context.Background()

	t.Run("requires asset code", func(t *testing.T) {
		_, err := fleet.Create(ctx, models.Vehicle{})
		assert.True(t, IsValidation(err))
	})

	t.Run("defaults", func(t *testing.T) {
		v, err := fleet.Create(ctx, models.Vehicle{AssetCode: "AKT-GR-01"})
		require.NoError(t, err)
		assert.Equal(t, models.VehicleActive, v.Status)
		assert.Equal(t, models.DueOK, v.Maintenance.DueState)
		assert.NotEmpty(t, v.ID)
		assert.False(t, v.LastUpdate.IsZero())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := fleet.Create(ctx, models.Vehicle{AssetCode: "AKT-GR-02", Status: "parked"})
		assert.True(t, IsValidation(err))
	})
}

func TestFleetCollection_Update(t *testing.T) {
	fleet := NewFleetCollection(kv.NewMemory())
	ctx := context.Background()

	t.Run("merges only set fields", func(t *testing.T) {
		before, err := fleet.GetByID(ctx, "veh_001")
		require.NoError(t, err)

		status := models.VehicleIdle
		updated, err := fleet.Update(ctx, "veh_001", VehiclePatch{Status: &status})
		require.NoError(t, err)

		assert.Equal(t, models.VehicleIdle, updated.Status)
		assert.Equal(t, before.HealthScore, updated.HealthScore)
		assert.Equal(t, before.LastLocation, updated.LastLocation)
		assert.True(t, updated.LastUpdate.After(before.LastUpdate))
	})

	t.Run("unknown id", func(t *testing.T) {
		health := 50.0
		_, err := fleet.Update(ctx, "veh_999", VehiclePatch{HealthScore: &health})
		assert.True(t, IsNotFound(err))
	})
}

func TestFleetCollection_UpdateStatus(t *testing.T) {
	fleet := NewFleetCollection(kv.NewMemory())
	ctx := context.Background()

	updated, err := fleet.UpdateStatus(ctx, "veh_002", models.VehicleOffline)
	require.NoError(t, err)
	assert.Equal(t, models.VehicleOffline, updated.Status)

	_, err = fleet.UpdateStatus(ctx, "veh_002", "parked")
	assert.True(t, IsValidation(err))
}
