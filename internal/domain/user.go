package domain

import (
	"errors"
	"time"
)

// User represents a system user.
type User struct {
	ID             string
	Username       string
	HashedPassword string
	Role           Role
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Role represents a user's access level.
type Role string

const (
	// RoleAdmin has full access: edit/delete entries, approve purchases.
	RoleAdmin Role = "ADMIN"

	// RoleManager records cashbook entries and transfers.
	RoleManager Role = "MANAGER"

	// RoleInventory records inventory purchases and sales.
	RoleInventory Role = "INVENTORY"

	// RoleViewer can only read.
	RoleViewer Role = "VIEWER"
)

var validRoles = map[Role]bool{
	RoleAdmin:     true,
	RoleManager:   true,
	RoleInventory: true,
	RoleViewer:    true,
}

// IsValid checks if the role is a known role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanEditEntries reports whether the role may update or delete persisted
// cashbook entries.
func (r Role) CanEditEntries() bool {
	return r == RoleAdmin
}

// CanApprovePurchases reports whether the role may decide purchase
// approvals. Admin purchases are auto-approved on creation.
func (r Role) CanApprovePurchases() bool {
	return r == RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
