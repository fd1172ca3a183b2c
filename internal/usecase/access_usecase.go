package usecase

import (
	"context"

	"vigil/internal/domain/entity"

	"github.com/google/uuid"
)

// AccessUsecase is the gate in front of protected operations.
type AccessUsecase interface {
	// Authenticate verifies a session token and returns its claims.
	Authenticate(ctx context.Context, token string) (*entity.SessionClaims, error)

	// Authorize re-reads the user and checks status and role.
	// An empty role list admits any role.
	Authorize(ctx context.Context, userID uuid.UUID, roles ...entity.Role) (*entity.User, error)

	// VerifyMachineKey checks the shared secret presented by the inference service.
	VerifyMachineKey(key string) error
}
