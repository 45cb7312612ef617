package models

import "time"

// VehicleStatus is the operational state of a vehicle.
type VehicleStatus string

const (
	VehicleActive  VehicleStatus = "active"
	VehicleIdle    VehicleStatus = "idle"
	VehicleOffline VehicleStatus = "offline"
)

// IsValidVehicleStatus checks if a vehicle status is valid.
func IsValidVehicleStatus(s VehicleStatus) bool {
	switch s {
	case VehicleActive, VehicleIdle, VehicleOffline:
		return true
	default:
		return false
	}
}

// DueState classifies maintenance urgency for a vehicle.
type DueState string

const (
	DueOK      DueState = "ok"
	DueSoon    DueState = "due_soon"
	DueOverdue DueState = "overdue"
)

// Maintenance is the maintenance sub-record of a vehicle.
type Maintenance struct {
	DueState           DueState  `json:"dueState"`
	NextDueAt          time.Time `json:"nextDueAt"`
	NextDueEngineHours *float64  `json:"nextDueEngineHours"`
}

// Vehicle represents a fleet vehicle.
type Vehicle struct {
	ID              string        `json:"id"`
	AssetCode       string        `json:"assetCode"`
	Plate           string        `json:"plate"`
	VIN             string        `json:"vin"`
	Make            string        `json:"make"`
	Model           string        `json:"model"`
	Year            int           `json:"year"`
	Type            string        `json:"type"` // "excavator", "tipper_truck", "water_tanker", ...
	Status          VehicleStatus `json:"status"`
	HealthScore     float64       `json:"healthScore"` // 0-100
	LastUpdate      time.Time     `json:"lastUpdate"`
	LastLocation    Location      `json:"lastLocation"`
	OdometerKm      *float64      `json:"odometerKm"`
	EngineHours     *float64      `json:"engineHours"`
	Maintenance     Maintenance   `json:"maintenance"`
	OpenAlertsCount int           `json:"openAlertsCount"`
}
