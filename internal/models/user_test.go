package models

import "testing"

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		expected bool
	}{
		{"fleet manager role", RoleFleetManager, true},
		{"ops manager role", RoleOpsManager, true},
		{"admin role", RoleAdmin, true},
		{"invalid role", "driver", false},
		{"empty role", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidRole(tt.role)
			if result != tt.expected {
				t.Errorf("IsValidRole(%s) = %v, want %v", tt.role, result, tt.expected)
			}
		})
	}
}

func TestUser_HasPermission(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	ops := &User{Role: RoleOpsManager}
	fleet := &User{Role: RoleFleetManager}

	tests := []struct {
		name     string
		user     *User
		action   string
		expected bool
	}{
		{"admin can manage users", admin, "manage_users", true},
		{"admin can view fleet", admin, "view_fleet", true},

		{"ops manager cannot manage users", ops, "manage_users", false},
		{"ops manager can view fleet", ops, "view_fleet", true},
		{"ops manager can create shift", ops, "create_shift", true},

		{"fleet manager can view fleet", fleet, "view_fleet", true},
		{"fleet manager can create work order", fleet, "create_work_order", true},
		{"fleet manager can ack alert", fleet, "ack_alert", true},
		{"fleet manager cannot create shift", fleet, "create_shift", false},
		{"fleet manager cannot manage users", fleet, "manage_users", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.user.HasPermission(tt.action)
			if result != tt.expected {
				t.Errorf("User with role %s HasPermission(%s) = %v, want %v",
					tt.user.Role, tt.action, result, tt.expected)
			}
		})
	}
}
