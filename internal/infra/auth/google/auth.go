// Package google verifies Google Sign-In ID tokens.
package google

import (
	"context"
	"log/slog"

	"vigil/config"
	"vigil/internal/domain/service"

	"github.com/pkg/errors"
	"google.golang.org/api/idtoken"
)

// validateFunc matches idtoken.Validate.
type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// AuthServiceImpl implements service.OAuthAuthService for Google ID tokens.
type AuthServiceImpl struct {
	clientID string
	validate validateFunc
	logger   *slog.Logger
}

// NewAuthService creates the Google verifier. It returns nil when no client id
// is configured, which disables Google sign-in.
func NewAuthService(cfg *config.Config, logger *slog.Logger) service.OAuthAuthService {
	if cfg.GoogleOAuth == nil || cfg.GoogleOAuth.ClientID == "" {
		logger.Info("Google sign-in disabled: googleOAuth.clientId is not set")

		return nil
	}

	return &AuthServiceImpl{
		clientID: cfg.GoogleOAuth.ClientID,
		validate: idtoken.Validate,
		logger:   logger,
	}
}

// VerifyIDToken checks signature, issuer, audience and expiry through Google's
// published keys and requires a verified email.
func (s *AuthServiceImpl) VerifyIDToken(ctx context.Context, idToken string) (*service.OAuthUser, error) {
	payload, err := s.validate(ctx, idToken, s.clientID)
	if err != nil {
		s.logger.Warn("Google ID token rejected", slog.Any("error", err))

		return nil, errors.Wrap(err, "token verification failed")
	}

	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	name, _ := payload.Claims["name"].(string)

	if email == "" {
		return nil, errors.New("token carries no email claim")
	}
	if !verified {
		return nil, errors.New("email not verified")
	}

	s.logger.Debug("Google ID token verified",
		slog.String("subject", payload.Subject),
		slog.String("email", email))

	return &service.OAuthUser{
		ID:            payload.Subject,
		Email:         email,
		Name:          name,
		EmailVerified: verified,
	}, nil
}
