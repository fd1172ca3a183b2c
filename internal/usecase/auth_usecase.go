// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"vigil/internal/domain/entity"
)

// --- Input DTOs ---

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// GoogleLoginInput carries a Google ID token obtained by the frontend.
type GoogleLoginInput struct {
	IDToken string
}

// VerifySecondFactorInput carries the emailed 2FA code.
type VerifySecondFactorInput struct {
	Code string
}

// RequestPasswordResetInput starts the reset flow for an email address.
type RequestPasswordResetInput struct {
	Email string
}

// VerifyResetCodeInput checks a reset code without consuming it.
type VerifyResetCodeInput struct {
	Code string
}

// ResetPasswordInput consumes a reset code and sets a new password.
type ResetPasswordInput struct {
	Code        string
	NewPassword string
}

// --- Output DTOs ---

// LoginOutput is either a minted session or a pending second-factor challenge.
type LoginOutput struct {
	Pending   bool
	TempToken string // Only set when codes are exposed for local development
	Session   *entity.Session
	User      *entity.User
}

// ResetRequestOutput is returned for every reset request, known email or not.
type ResetRequestOutput struct {
	TempToken string // Only set when codes are exposed for local development
}

// AuthUsecase defines the sign-in and password recovery operations.
type AuthUsecase interface {
	// Login checks credentials and either mints a session or issues a 2FA code.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// GoogleLogin signs in an existing user with a verified Google ID token.
	GoogleLogin(ctx context.Context, input *GoogleLoginInput) (*LoginOutput, error)

	// VerifySecondFactor redeems a 2FA code and mints the session.
	VerifySecondFactor(ctx context.Context, input *VerifySecondFactorInput) (*LoginOutput, error)

	// RequestPasswordReset emails a reset code. Unknown emails succeed silently.
	RequestPasswordReset(ctx context.Context, input *RequestPasswordResetInput) (*ResetRequestOutput, error)

	// VerifyResetCode reports whether a reset code is still live.
	VerifyResetCode(ctx context.Context, input *VerifyResetCodeInput) error

	// ResetPassword redeems a reset code and replaces the password hash.
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
}
