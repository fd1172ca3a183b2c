// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"vigil/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when the email or phone is already taken.
	ErrDuplicateUser = errors.New("user email or phone already exists")
)

// UserUpdate lists the columns an update writes. Nil fields keep their stored
// value, so concurrent updates of different columns never undo each other.
type UserUpdate struct {
	PasswordHash     *string
	Blocked          *bool
	Active           *bool
	DeactivatedBy    *uuid.UUID
	TwoFactorEnabled *bool
	HasGoogleAuth    *bool
}

// IsEmpty reports whether the update writes nothing.
func (u *UserUpdate) IsEmpty() bool {
	return u == nil || (u.PasswordHash == nil && u.Blocked == nil && u.Active == nil &&
		u.DeactivatedBy == nil && u.TwoFactorEnabled == nil && u.HasGoogleAuth == nil)
}

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByPhone retrieves a single user by their phone number.
	FindByPhone(ctx context.Context, phone string) (*entity.User, error)

	// List returns every user, including deactivated ones, oldest first.
	List(ctx context.Context) ([]*entity.User, error)

	// ExistsWithRole reports whether any active user holds the role.
	ExistsWithRole(ctx context.Context, role entity.Role) (bool, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// UpdateFields writes only the columns set in update and returns the stored row.
	UpdateFields(ctx context.Context, id uuid.UUID, update *UserUpdate) (*entity.User, error)
}
