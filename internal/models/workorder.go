package models

import "time"

// WorkOrderStatus tracks a maintenance work order through its lifecycle.
// Transitions are not programmatically restricted.
type WorkOrderStatus string

const (
	WorkOrderOpen       WorkOrderStatus = "open"
	WorkOrderInProgress WorkOrderStatus = "in_progress"
	WorkOrderClosed     WorkOrderStatus = "closed"
)

// IsValidWorkOrderStatus checks if a work order status is valid.
func IsValidWorkOrderStatus(s WorkOrderStatus) bool {
	switch s {
	case WorkOrderOpen, WorkOrderInProgress, WorkOrderClosed:
		return true
	default:
		return false
	}
}

// Part is a line item on a work order's parts list.
type Part struct {
	Name     string  `json:"name"`
	Qty      int     `json:"qty"`
	UnitCost float64 `json:"unitCost"`
}

// WorkOrder represents a maintenance task record tied to a vehicle.
// CostEstimate and DowntimeHours are bookkeeping figures entered by the
// caller; they are not recomputed from the parts list.
type WorkOrder struct {
	ID            string          `json:"id"`
	VehicleID     string          `json:"vehicleId"`
	CreatedAt     time.Time       `json:"createdAt"`
	Status        WorkOrderStatus `json:"status"`
	Category      string          `json:"category"` // "hydraulics", "engine", "general", ...
	Description   string          `json:"description"`
	Parts         []Part          `json:"parts"`
	CostEstimate  float64         `json:"costEstimate"`
	DowntimeHours float64         `json:"downtimeHours"`
}
