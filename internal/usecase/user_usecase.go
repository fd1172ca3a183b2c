package usecase

import (
	"context"

	"vigil/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateUserInput defines the data required to create an account.
type CreateUserInput struct {
	Names    string
	Email    string
	Phone    string
	Password string
	Role     entity.Role // Defaults to ADMIN when empty
}

// ChangePasswordInput is used by a user changing their own password.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// UserUsecase covers account administration and self-service.
type UserUsecase interface {
	CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// SetAccess blocks or unblocks an account.
	SetAccess(ctx context.Context, targetID uuid.UUID, blocked bool) (*entity.User, error)

	// Deactivate soft-deletes an account and records who did it.
	Deactivate(ctx context.Context, actorID, targetID uuid.UUID) (*entity.User, error)

	ChangePassword(ctx context.Context, userID uuid.UUID, input *ChangePasswordInput) error
	AdminChangePassword(ctx context.Context, targetID uuid.UUID, newPassword string) error

	// ToggleSecondFactor flips the 2FA flag and returns the updated user.
	ToggleSecondFactor(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// EnsureSuperAdmin creates the configured bootstrap account when no active SUPERADMIN exists.
	EnsureSuperAdmin(ctx context.Context) error
}
