package models

import "testing"

func TestStatusValidators(t *testing.T) {
	tests := []struct {
		name     string
		check    func() bool
		expected bool
	}{
		{"vehicle active", func() bool { return IsValidVehicleStatus(VehicleActive) }, true},
		{"vehicle bogus", func() bool { return IsValidVehicleStatus("parked") }, false},
		{"alert acked", func() bool { return IsValidAlertStatus(AlertAcked) }, true},
		{"alert bogus", func() bool { return IsValidAlertStatus("dismissed") }, false},
		{"work order in progress", func() bool { return IsValidWorkOrderStatus(WorkOrderInProgress) }, true},
		{"work order bogus", func() bool { return IsValidWorkOrderStatus("cancelled") }, false},
		{"shift missed", func() bool { return IsValidShiftStatus(ShiftMissed) }, true},
		{"shift bogus", func() bool { return IsValidShiftStatus("paused") }, false},
		{"invoice overdue", func() bool { return IsValidInvoiceStatus(InvoiceOverdue) }, true},
		{"invoice bogus", func() bool { return IsValidInvoiceStatus("void") }, false},
		{"tender awarded", func() bool { return IsValidTenderStatus(TenderAwarded) }, true},
		{"tender bogus", func() bool { return IsValidTenderStatus("withdrawn") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(); got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}
