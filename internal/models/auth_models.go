package models

import "time"

// Role is what a user is allowed to do.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWaiter Role = "waiter"
)

// IsValidRole checks if the provided string is a known Role.
func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleAdmin, RoleWaiter:
		return true
	default:
		return false
	}
}

// User represents a user in the system
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // '-' means don't send in JSON response
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
