package entity

import (
	"time"

	"github.com/google/uuid"
)

// CodePurpose separates the code namespaces. A code issued for one purpose
// can never be redeemed for another.
type CodePurpose string

const (
	// CodePurposeLogin completes a password or Google sign-in.
	CodePurposeLogin CodePurpose = "2fa"
	// CodePurposeReset authorizes a password reset.
	CodePurposeReset CodePurpose = "reset"
)

func (p CodePurpose) String() string {
	return string(p)
}

// IsValid checks if the CodePurpose is a known value.
func (p CodePurpose) IsValid() bool {
	return p == CodePurposeLogin || p == CodePurposeReset
}

// SecondFactorCode is a short-lived, single-use numeric code bound to a user.
type SecondFactorCode struct {
	Code      string
	Purpose   CodePurpose
	UserID    uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the code can no longer be redeemed at now.
// A code is redeemable only strictly before ExpiresAt.
func (c *SecondFactorCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
