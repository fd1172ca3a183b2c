package service

import (
	"context"
	"errors"

	"vigil/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCodeInvalidOrExpired is returned when a code is unknown, already
// redeemed, issued for another purpose or past its expiry.
var ErrCodeInvalidOrExpired = errors.New("code is invalid or expired")

// CodeRegistry keeps the outstanding second-factor codes.
// Implementations must be safe for concurrent use.
type CodeRegistry interface {
	// Issue creates a fresh code for the user under the given purpose.
	Issue(ctx context.Context, userID uuid.UUID, purpose entity.CodePurpose) (*entity.SecondFactorCode, error)

	// Redeem consumes the code. Of any number of concurrent calls with the
	// same live code, exactly one succeeds.
	Redeem(ctx context.Context, code string, purpose entity.CodePurpose) (uuid.UUID, error)

	// Peek reports the owner of a live code without consuming it.
	Peek(ctx context.Context, code string, purpose entity.CodePurpose) (uuid.UUID, error)
}
