package impl

import (
	"io"
	"log/slog"
	"time"

	"vigil/config"
	"vigil/internal/domain/entity"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:      4,
			SessionTTL:      time.Hour,
			SecondFactorTTL: 5 * time.Minute,
		},
	}
	cfg.SecretKey.Session = "test-session-secret"
	cfg.SecretKey.ModelAPIKey = "model-secret"

	return cfg
}

func newActiveUser(role entity.Role) *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Names:        "Test User",
		Email:        "user@example.com",
		Phone:        "+10000000000",
		PasswordHash: "hashed_password",
		Role:         role,
		Active:       true,
	}
}

func ptrTo[T any](v T) *T {
	return &v
}
