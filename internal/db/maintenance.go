package db

import (
	"context"
	"time"

	"github.com/ukydev/fleet-ops/internal/fixtures"
	"github.com/ukydev/fleet-ops/internal/kv"
	"github.com/ukydev/fleet-ops/internal/models"
)

// Vehicles with a health score under this threshold surface in the
// high-risk bucket of the maintenance queue. Display constant, not a model.
const highRiskHealthThreshold = 40

// Queue partitions the fleet for the maintenance screen. A vehicle can
// appear in more than one bucket; this is display grouping, not a state
// machine.
type Queue struct {
	Overdue        []models.Vehicle   `json:"overdue"`
	DueSoon        []models.Vehicle   `json:"dueSoon"`
	HighRisk       []models.Vehicle   `json:"highRisk"`
	OpenWorkOrders []models.WorkOrder `json:"openWorkOrders"`
}

// MaintenanceCollection provides access to work orders and the derived
// maintenance queue.
type MaintenanceCollection struct {
	orders *collection[models.WorkOrder]
	fleet  *FleetCollection
}

// NewMaintenanceCollection creates a maintenance collection over the given
// store, reading vehicles through fleet.
func NewMaintenanceCollection(store kv.Store, fleet *FleetCollection) *MaintenanceCollection {
	return &MaintenanceCollection{
		orders: &collection[models.WorkOrder]{
			store: store,
			key:   keyWorkOrders,
			kind:  "work order",
			seed:  fixtures.WorkOrders,
			id:    func(wo models.WorkOrder) string { return wo.ID },
		},
		fleet: fleet,
	}
}

// ListWorkOrders returns work orders, filtered to one vehicle when
// vehicleID is non-empty.
func (m *MaintenanceCollection) ListWorkOrders(ctx context.Context, vehicleID string) ([]models.WorkOrder, error) {
	if vehicleID == "" {
		return m.orders.List(ctx)
	}
	return m.orders.filter(ctx, func(wo models.WorkOrder) bool {
		return wo.VehicleID == vehicleID
	})
}

// GetWorkOrder returns one work order by id, or a NotFoundError.
func (m *MaintenanceCollection) GetWorkOrder(ctx context.Context, id string) (models.WorkOrder, error) {
	return m.orders.getByID(ctx, id)
}

// CreateWorkOrder opens a work order against a vehicle, filling defaults
// for omitted fields.
func (m *MaintenanceCollection) CreateWorkOrder(ctx context.Context, wo models.WorkOrder) (models.WorkOrder, error) {
	if wo.VehicleID == "" {
		return models.WorkOrder{}, ValidationError{Field: "vehicleId", Reason: "required"}
	}
	if wo.ID == "" {
		wo.ID = newID("wo")
	}
	if wo.Status == "" {
		wo.Status = models.WorkOrderOpen
	}
	if !models.IsValidWorkOrderStatus(wo.Status) {
		return models.WorkOrder{}, ValidationError{Field: "status", Reason: "unknown work order status " + string(wo.Status)}
	}
	if wo.Category == "" {
		wo.Category = "general"
	}
	if wo.Parts == nil {
		wo.Parts = []models.Part{}
	}
	if wo.CreatedAt.IsZero() {
		wo.CreatedAt = time.Now().UTC()
	}
	if err := m.orders.append(ctx, wo); err != nil {
		return models.WorkOrder{}, err
	}
	return wo, nil
}

// UpdateWorkOrderStatus sets the status of a work order. Transitions are
// not restricted; any status can be set at any time.
func (m *MaintenanceCollection) UpdateWorkOrderStatus(ctx context.Context, id string, status models.WorkOrderStatus) (models.WorkOrder, error) {
	if !models.IsValidWorkOrderStatus(status) {
		return models.WorkOrder{}, ValidationError{Field: "status", Reason: "unknown work order status " + string(status)}
	}
	return m.orders.patch(ctx, id, func(wo *models.WorkOrder) {
		wo.Status = status
	})
}

// GetQueue partitions vehicles by maintenance urgency and collects the
// work orders still open.
func (m *MaintenanceCollection) GetQueue(ctx context.Context) (Queue, error) {
	vehicles, err := m.fleet.List(ctx)
	if err != nil {
		return Queue{}, err
	}
	orders, err := m.orders.List(ctx)
	if err != nil {
		return Queue{}, err
	}

	q := Queue{
		Overdue:        []models.Vehicle{},
		DueSoon:        []models.Vehicle{},
		HighRisk:       []models.Vehicle{},
		OpenWorkOrders: []models.WorkOrder{},
	}
	for _, v := range vehicles {
		if v.Maintenance.DueState == models.DueOverdue {
			q.Overdue = append(q.Overdue, v)
		}
		if v.Maintenance.DueState == models.DueSoon {
			q.DueSoon = append(q.DueSoon, v)
		}
		if v.HealthScore < highRiskHealthThreshold {
			q.HighRisk = append(q.HighRisk, v)
		}
	}
	for _, wo := range orders {
		if wo.Status != models.WorkOrderClosed {
			q.OpenWorkOrders = append(q.OpenWorkOrders, wo)
		}
	}
	return q, nil
}
