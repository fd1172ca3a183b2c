package service

import (
	"context"
)

// OAuthUser represents user information from OAuth providers
type OAuthUser struct {
	ID            string // Provider-specific user ID (Google's 'sub' claim)
	Email         string // User's email address
	Name          string // User's display name
	EmailVerified bool   // Whether the email is verified by the provider
}

// OAuthAuthService verifies ID tokens issued by an external identity provider.
type OAuthAuthService interface {
	// VerifyIDToken verifies an OAuth ID token and returns user information
	VerifyIDToken(ctx context.Context, idToken string) (*OAuthUser, error)
}
