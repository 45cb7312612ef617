package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/ukydev/fleet-ops/internal/kv"
	"github.com/ukydev/fleet-ops/internal/models"
)

// TelemetryMode selects how telemetry reads behave.
type TelemetryMode string

const (
	// TelemetrySynthesized fabricates a fresh series per read. Nothing is
	// stored; two reads never return the same samples. This is the demo
	// mode the dashboard originally shipped with and is kept as an explicit,
	// documented mode.
	TelemetrySynthesized TelemetryMode = "synthesized"
	// TelemetryPersisted reads samples previously recorded via Record,
	// e.g. from the MQTT ingest path.
	TelemetryPersisted TelemetryMode = "persisted"
)

const synthSeriesLen = 20

// TelemetryCollection provides access to vehicle telemetry series.
type TelemetryCollection struct {
	events *collection[models.TelemetryEvent]
	mode   TelemetryMode
	now    func() time.Time
}

// NewTelemetryCollection creates a telemetry collection in the given mode.
func NewTelemetryCollection(store kv.Store, mode TelemetryMode) *TelemetryCollection {
	if mode == "" {
		mode = TelemetrySynthesized
	}
	return &TelemetryCollection{
		events: &collection[models.TelemetryEvent]{
			store: store,
			key:   keyTelemetry,
			kind:  "telemetry event",
			seed:  func() []models.TelemetryEvent { return nil },
			id:    func(e models.TelemetryEvent) string { return e.ID },
		},
		mode: mode,
		now:  time.Now,
	}
}

// Mode reports which telemetry mode the collection runs in.
func (t *TelemetryCollection) Mode() TelemetryMode { return t.mode }

// Series returns the telemetry series for a vehicle: a fresh synthetic
// series in synthesized mode, recorded samples in persisted mode.
func (t *TelemetryCollection) Series(ctx context.Context, vehicleID string) ([]models.TelemetryEvent, error) {
	if vehicleID == "" {
		return nil, ValidationError{Field: "vehicleId", Reason: "required"}
	}
	if t.mode == TelemetrySynthesized {
		return t.synthesize(vehicleID), nil
	}
	return t.events.filter(ctx, func(e models.TelemetryEvent) bool {
		return e.VehicleID == vehicleID
	})
}

// Record appends a telemetry sample. Samples are append-only; there is no
// update or delete path.
func (t *TelemetryCollection) Record(ctx context.Context, ev models.TelemetryEvent) (models.TelemetryEvent, error) {
	if ev.VehicleID == "" {
		return models.TelemetryEvent{}, ValidationError{Field: "vehicleId", Reason: "required"}
	}
	if ev.ID == "" {
		ev.ID = newID("tel")
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = t.now().UTC()
	}
	if err := t.events.append(ctx, ev); err != nil {
		return models.TelemetryEvent{}, err
	}
	return ev, nil
}

// Reset clears recorded telemetry.
func (t *TelemetryCollection) Reset(ctx context.Context) error {
	return t.events.reset(ctx)
}

// synthesize fabricates an hourly series ending now, jittered around the
// depot location.
func (t *TelemetryCollection) synthesize(vehicleID string) []models.TelemetryEvent {
	now := t.now().UTC()
	series := make([]models.TelemetryEvent, 0, synthSeriesLen)
	for i := 0; i < synthSeriesLen; i++ {
		series = append(series, models.TelemetryEvent{
			ID:          fmt.Sprintf("tel_%s_%d", vehicleID, i),
			VehicleID:   vehicleID,
			Timestamp:   now.Add(-time.Duration(i) * time.Hour),
			Lat:         17.0151 + (rand.Float64()-0.5)*0.05,
			Lon:         54.0924 + (rand.Float64()-0.5)*0.05,
			SpeedKph:    float64(rand.Intn(80)),
			IgnitionOn:  rand.Float64() > 0.2,
			EngineHours: 6821 + float64(synthSeriesLen-i)*1.5,
			Metrics: models.TelemetryMetrics{
				CoolantTempC:         85 + rand.Float64()*20,
				BatteryV:             11.5 + rand.Float64()*2,
				IdleMinutesSinceLast: rand.Intn(15),
			},
		})
	}
	return series
}
