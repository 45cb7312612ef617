package models

import "time"

// AlertSeverity grades how urgent an alert is.
type AlertSeverity string

const (
	SeverityLow  AlertSeverity = "low"
	SeverityMed  AlertSeverity = "med"
	SeverityHigh AlertSeverity = "high"
)

// AlertStatus tracks an alert through its lifecycle.
// Allowed transitions: open -> acked -> closed, and open -> closed directly.
// There is no transition back out of closed.
type AlertStatus string

const (
	AlertOpen   AlertStatus = "open"
	AlertAcked  AlertStatus = "acked"
	AlertClosed AlertStatus = "closed"
)

// IsValidAlertStatus checks if an alert status is valid.
func IsValidAlertStatus(s AlertStatus) bool {
	switch s {
	case AlertOpen, AlertAcked, AlertClosed:
		return true
	default:
		return false
	}
}

// Alert represents a condition raised against a vehicle (or a shift).
type Alert struct {
	ID                string        `json:"id"`
	VehicleID         string        `json:"vehicleId,omitempty"`
	ShiftID           string        `json:"shiftId,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	Type              string        `json:"type"` // "OVERHEAT_EVENT", "LOW_BATTERY", ...
	Severity          AlertSeverity `json:"severity"`
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	Status            AlertStatus   `json:"status"`
	RecommendedAction string        `json:"recommendedAction,omitempty"`
}
