// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleAdmin is the default operator role.
	RoleAdmin Role = "ADMIN"
	// RoleSuperAdmin may administer accounts and delete notifications.
	RoleSuperAdmin Role = "SUPERADMIN"
	// RoleNormal is a read-only console user.
	RoleNormal Role = "NORMAL"
)

// DefaultRole is assigned when an account is created without a role.
const DefaultRole = RoleAdmin

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin, RoleNormal:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}
