package models

import "time"

// TelemetryMetrics carries the sensor metrics attached to a telemetry sample.
type TelemetryMetrics struct {
	CoolantTempC         float64 `json:"coolantTempC"`
	BatteryV             float64 `json:"batteryV"`
	IdleMinutesSinceLast int     `json:"idleMinutesSinceLast"`
}

// TelemetryEvent is an immutable time-series sample for a vehicle.
type TelemetryEvent struct {
	ID          string           `json:"id"`
	VehicleID   string           `json:"vehicleId"`
	Timestamp   time.Time        `json:"timestamp"`
	Lat         float64          `json:"lat"`
	Lon         float64          `json:"lon"`
	SpeedKph    float64          `json:"speedKph"`
	IgnitionOn  bool             `json:"ignitionOn"`
	EngineHours float64          `json:"engineHours"`
	Metrics     TelemetryMetrics `json:"metrics"`
}
