package service

import (
	"errors"
	"time"

	"vigil/internal/domain/entity"
)

// ErrInvalidToken is returned for malformed, forged or expired session tokens.
var ErrInvalidToken = errors.New("invalid session token")

// TokenService mints and verifies session tokens.
type TokenService interface {
	// Mint signs a new session for the user.
	Mint(user *entity.User) (*entity.Session, error)

	// Verify checks signature and expiry and returns the embedded claims.
	Verify(token string) (*entity.SessionClaims, error)

	// TTL returns the absolute lifetime of a session.
	TTL() time.Duration
}
