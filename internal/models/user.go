package models

// Role represents user roles in the system
type Role string

const (
	RoleFleetManager Role = "fleet_manager"
	RoleOpsManager   Role = "ops_manager"
	RoleAdmin        Role = "admin"
)

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleFleetManager, RoleOpsManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// User represents a user in the system
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	Org          string `json:"org"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Claims represents JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Exp    int64  `json:"exp"`
}

// HasPermission checks if a user has permission for a specific action
func (u *User) HasPermission(action string) bool {
	switch u.Role {
	case RoleAdmin:
		return true
	case RoleOpsManager:
		return action != "manage_users"
	case RoleFleetManager:
		switch action {
		case "view_fleet", "view_telemetry", "view_maintenance",
			"create_work_order", "update_work_order", "ack_alert":
			return true
		}
		return false
	default:
		return false
	}
}
