// Package fixtures holds the seed collections every domain store lazily
// materializes on first read. Each function builds a fresh slice so callers
// can never mutate the seed through aliasing.
package fixtures

import (
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ukydev/fleet-ops/internal/models"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

// DefaultPassword is the password every seeded user starts with.
const DefaultPassword = "password123"

var (
	hashOnce    sync.Once
	defaultHash string
)

func passwordHash() string {
	hashOnce.Do(func() {
		// MinCost keeps seeding cheap; these are demo accounts.
		h, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		defaultHash = string(h)
	})
	return defaultHash
}

// Users seeds the user collection. All seeded accounts share DefaultPassword.
func Users() []models.User {
	hash := passwordHash()
	return []models.User{
		{ID: "u_1", Name: "Faisal Al-Harthy", Email: "faisal@aktobe.om", PasswordHash: hash, Role: models.RoleFleetManager, Org: "Aktobe Contracting"},
		{ID: "u_2", Name: "Mariam Al-Balushi", Email: "mariam@aktobe.om", PasswordHash: hash, Role: models.RoleOpsManager, Org: "Aktobe Contracting"},
		{ID: "u_3", Name: "Said Al-Rawahi", Email: "said@aktobe.om", PasswordHash: hash, Role: models.RoleAdmin, Org: "Aktobe Contracting"},
	}
}

// Vehicles seeds the fleet collection.
func Vehicles() []models.Vehicle {
	return []models.Vehicle{
		{
			ID:           "veh_001",
			AssetCode:    "AKT-EX-17",
			Plate:        "OM-12345",
			VIN:          "VIN1234567890",
			Make:         "CAT",
			Model:        "320D",
			Year:         2019,
			Type:         "excavator",
			Status:       models.VehicleActive,
			HealthScore:  42,
			LastUpdate:   time.Date(2026, 1, 6, 8, 41, 0, 0, time.UTC),
			LastLocation: models.Location{Lat: 17.0151, Lon: 54.0924},
			OdometerKm:   nil,
			EngineHours:  floatPtr(6821),
			Maintenance: models.Maintenance{
				DueState:           models.DueSoon,
				NextDueAt:          time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC),
				NextDueEngineHours: floatPtr(6900),
			},
			OpenAlertsCount: 2,
		},
		{
			ID:           "veh_002",
			AssetCode:    "AKT-TK-04",
			Plate:        "OM-77881",
			VIN:          "VIN0000000004",
			Make:         "Hino",
			Model:        "500",
			Year:         2021,
			Type:         "tipper_truck",
			Status:       models.VehicleIdle,
			HealthScore:  76,
			LastUpdate:   time.Date(2026, 1, 6, 8, 39, 0, 0, time.UTC),
			LastLocation: models.Location{Lat: 17.0250, Lon: 54.1050},
			OdometerKm:   floatPtr(148220),
			EngineHours:  nil,
			Maintenance: models.Maintenance{
				DueState:  models.DueOK,
				NextDueAt: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
			},
			OpenAlertsCount: 0,
		},
		{
			ID:           "veh_003",
			AssetCode:    "AKT-WT-09",
			Plate:        "OM-55110",
			VIN:          "VIN0000000009",
			Make:         "Isuzu",
			Model:        "FTR",
			Year:         2018,
			Type:         "water_tanker",
			Status:       models.VehicleOffline,
			HealthScore:  33,
			LastUpdate:   time.Date(2026, 1, 5, 23, 10, 0, 0, time.UTC),
			LastLocation: models.Location{Lat: 16.9950, Lon: 54.0800},
			OdometerKm:   floatPtr(205880),
			EngineHours:  nil,
			Maintenance: models.Maintenance{
				DueState:  models.DueOverdue,
				NextDueAt: time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC),
			},
			OpenAlertsCount: 3,
		},
	}
}

// Alerts seeds the alert collection.
func Alerts() []models.Alert {
	return []models.Alert{
		{
			ID:                "al_7007",
			VehicleID:         "veh_001",
			CreatedAt:         time.Date(2026, 1, 6, 7, 30, 0, 0, time.UTC),
			Type:              "OVERHEAT_EVENT",
			Severity:          models.SeverityHigh,
			Title:             "Overheat event detected",
			Description:       "Coolant temp exceeded 105°C for 4 minutes.",
			Status:            models.AlertOpen,
			RecommendedAction: "Check coolant level, radiator fan, and schedule inspection within 24h.",
		},
	}
}

// WorkOrders seeds the work order collection.
func WorkOrders() []models.WorkOrder {
	return []models.WorkOrder{
		{
			ID:          "wo_1002",
			VehicleID:   "veh_001",
			CreatedAt:   time.Date(2026, 1, 4, 10, 15, 0, 0, time.UTC),
			Status:      models.WorkOrderOpen,
			Category:    "hydraulics",
			Description: "Hydraulic response lag; inspect filters and lines.",
			Parts: []models.Part{
				{Name: "Hydraulic filter", Qty: 1, UnitCost: 18.0},
			},
			CostEstimate:  120.0,
			DowntimeHours: 0,
		},
	}
}

// Projects seeds the project collection.
func Projects() []models.Project {
	return []models.Project{
		{ID: "p_1", Name: "Muscat Road Rehab", ClientName: "Ministry of Transport", Status: models.ProjectActive},
		{ID: "p_2", Name: "Sohar Yard Expansion", ClientName: "Logistics SAOC", Status: models.ProjectActive},
	}
}

// Sites seeds the site collection.
func Sites() []models.Site {
	return []models.Site{
		{ID: "s_1", ProjectID: "p_1", Name: "Al Khuwair Section 1", Lat: 23.588, Lon: 58.406},
		{ID: "s_2", ProjectID: "p_1", Name: "Al Ghubrah Section 2", Lat: 23.595, Lon: 58.380},
		{ID: "s_3", ProjectID: "p_2", Name: "Zone A - Primary Yard", Lat: 24.350, Lon: 56.740},
	}
}

// Teams seeds the team collection.
func Teams() []models.Team {
	return []models.Team{
		{ID: "t_1", Name: "Asphalt Crew A", LeaderName: "Ali Al-Said", DefaultHeadcount: 8},
		{ID: "t_2", Name: "Earthworks Crew B", LeaderName: "Hassan Juma", DefaultHeadcount: 12},
		{ID: "t_3", Name: "Marking & Finishing", LeaderName: "Omar Fahad", DefaultHeadcount: 4},
	}
}

// Shifts seeds the shift collection with one active shift for today.
func Shifts() []models.Shift {
	now := time.Now().UTC()
	return []models.Shift{
		{
			ID:               "sh_1",
			Date:             now.Format("2006-01-02"),
			ProjectID:        "p_1",
			SiteID:           "s_1",
			TeamID:           "t_1",
			PlannedStart:     "06:00",
			PlannedEnd:       "14:00",
			ActualStart:      "06:05",
			HeadcountPlanned: 8,
			HeadcountActual:  intPtr(7),
			Status:           models.ShiftActive,
			LastUpdateAt:     now,
		},
	}
}

// ShiftTasks seeds the shift task collection.
func ShiftTasks() []models.ShiftTask {
	return []models.ShiftTask{
		{ID: "tk_1", ShiftID: "sh_1", Title: "Milling Phase 1", Status: models.TaskDone},
		{ID: "tk_2", ShiftID: "sh_1", Title: "Asphalt Laying", Status: models.TaskTodo},
	}
}

// ShiftUpdates seeds the shift update log.
func ShiftUpdates() []models.ShiftUpdate {
	return []models.ShiftUpdate{
		{
			ID:        "up_1",
			ShiftID:   "sh_1",
			CreatedAt: time.Now().UTC(),
			Type:      models.UpdateCheckin,
			Message:   "Arrived on site. Weather clear.",
			Headcount: intPtr(7),
		},
	}
}

// Invoices seeds the invoice collection.
func Invoices() []models.Invoice {
	return []models.Invoice{
		{ID: "inv_001", InvoiceNumber: "INV-2026-001", ClientName: "Ministry of Transport", IssueDate: "2026-01-01", DueDate: "2026-01-15", Amount: 12500.50, Status: models.InvoicePaid},
		{ID: "inv_002", InvoiceNumber: "INV-2026-002", ClientName: "Logistics SAOC", IssueDate: "2026-01-05", DueDate: "2026-01-20", Amount: 4800.00, Status: models.InvoicePending},
		{ID: "inv_003", InvoiceNumber: "INV-2026-003", ClientName: "PDO Oman", IssueDate: "2025-12-15", DueDate: "2025-12-30", Amount: 9200.75, Status: models.InvoiceOverdue},
	}
}

// Tenders seeds the tender collection.
func Tenders() []models.Tender {
	return []models.Tender{
		{ID: "tnd_001", ReferenceNumber: "T-2026-DXB-04", Title: "Coastal Highway Expansion Ph. 3", Authority: "Public Works Authority", SubmissionDeadline: "2026-02-15", BudgetRange: "5M - 8M OMR", Status: models.TenderBidding},
		{ID: "tnd_002", ReferenceNumber: "T-2026-SLL-11", Title: "Salalah Port Pavement Upgrade", Authority: "Port of Salalah", SubmissionDeadline: "2026-01-25", BudgetRange: "1.2M OMR", Status: models.TenderOpen},
		{ID: "tnd_003", ReferenceNumber: "T-2025-MCT-88", Title: "Internal Road Network Rehab", Authority: "Muscat Municipality", SubmissionDeadline: "2025-12-10", BudgetRange: "3M OMR", Status: models.TenderSubmitted},
	}
}
