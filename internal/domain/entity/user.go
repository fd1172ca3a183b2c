// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an operator account of the monitoring console.
// It carries the credential material and the switches the access gate consults.
type User struct {
	ID                  uuid.UUID  `json:"id"`                  // The Global Unique Identifier (GUID) for the user.
	Names               string     `json:"names"`               // The user's full name.
	Email               string     `json:"email"`               // Unique login identifier.
	Phone               string     `json:"phone"`               // Unique contact phone number.
	PasswordHash        string     `json:"-"`                   // bcrypt hash, never serialized.
	Role                Role       `json:"role"`                // Authorization level.
	Blocked             bool       `json:"blocked"`             // A blocked user cannot sign in or pass authorization.
	Active              bool       `json:"active"`              // False once the account is deactivated (soft delete).
	TwoFactorEnabled    bool       `json:"twoFactorEnabled"`    // Sign-in requires an emailed code when set.
	NotificationEnabled bool       `json:"notificationEnabled"` // Whether the user wants incident notifications.
	HasGoogleAuth       bool       `json:"hasGoogleAuth"`       // Set after the first successful Google sign-in.
	DeactivatedBy       *uuid.UUID `json:"deactivatedBy"`       // The SUPERADMIN who deactivated this account.
	CreatedAt           time.Time  `json:"createdAt"`           // Timestamp of when this account was created.
	UpdatedAt           time.Time  `json:"updatedAt"`           // Timestamp of the last modification.
}

// CanSignIn reports whether the account may obtain or use a session.
func (u *User) CanSignIn() bool {
	return u.Active && !u.Blocked
}

// HasRole reports whether the user holds any of the given roles.
// An empty list accepts every role.
func (u *User) HasRole(roles ...Role) bool {
	if len(roles) == 0 {
		return true
	}

	return Roles(roles).Contains(u.Role)
}
