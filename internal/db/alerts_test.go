package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-ops/internal/kv"
	"github.com/ukydev/fleet-ops/internal/models"
)

func TestAlertCollection_List(t *testing.T) {
	alerts := NewAlertCollection(kv.NewMemory())
	ctx := context.Background()

	open, err := alerts.List(ctx, models.AlertOpen)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "al_7007", open[0].ID)

	closed, err := alerts.List(ctx, models.AlertClosed)
	require.NoError(t, err)
	assert.Empty(t, closed)

	_, err = alerts.List(ctx, "bogus")
	assert.True(t, IsValidation(err))
}

func TestAlertCollection_Create(t *testing.T) {
	alerts := NewAlertCollection(kv.NewMemory())
	ctx := context.Background()

	t.Run("needs a reference", func(t *testing.T) {
		_, err := alerts.Create(ctx, models.Alert{Title: "orphan"})
		assert.True(t, IsValidation(err))
	})

	t.Run("needs a title", func(t *testing.T) {
		_, err := alerts.Create(ctx, models.Alert{VehicleID: "veh_001"})
		assert.True(t, IsValidation(err))
	})

	t.Run("defaults", func(t *testing.T) {
		al, err := alerts.Create(ctx, models.Alert{VehicleID: "veh_001", Title: "Low coolant"})
		require.NoError(t, err)
		assert.Equal(t, models.SeverityLow, al.Severity)
		assert.Equal(t, models.AlertOpen, al.Status)
		assert.False(t, al.CreatedAt.IsZero())
	})
}

func TestAlertCollection_ClosedIsTerminal(t *testing.T) {
	alerts := NewAlertCollection(kv.NewMemory())
	ctx := context.Background()

	acked, err := alerts.UpdateStatus(ctx, "al_7007", models.AlertAcked)
	require.NoError(t, err)
	assert.Equal(t, models.AlertAcked, acked.Status)

	_, err = alerts.UpdateStatus(ctx, "al_7007", models.AlertClosed)
	require.NoError(t, err)

	_, err = alerts.UpdateStatus(ctx, "al_7007", models.AlertOpen)
	assert.True(t, IsValidation(err))

	_, err = alerts.UpdateStatus(ctx, "al_7007", models.AlertAcked)
	assert.True(t, IsValidation(err))
}
