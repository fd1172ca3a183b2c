package secondfactor

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"vigil/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newProviderConfig(backend string) *config.Config {
	return &config.Config{
		Auth:         &config.AuthConfig{SecondFactorTTL: 5 * time.Minute, SweepInterval: time.Minute},
		SecondFactor: &config.SecondFactorConfig{Backend: backend, KeyPrefix: "test"},
		Redis:        &config.RedisConfig{Addr: "localhost:6379"},
	}
}

func TestNewCodeRegistry(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("memory backend runs the sweeper with the lifecycle", func(t *testing.T) {
		lc := fxtest.NewLifecycle(t)

		registry, err := NewCodeRegistry(Params{Lifecycle: lc, Config: newProviderConfig(config.SecondFactorBackendMemory), Logger: logger})

		require.NoError(t, err)
		assert.IsType(t, &MemoryRegistry{}, registry)
		lc.RequireStart()
		lc.RequireStop()
	})

	t.Run("redis backend without client", func(t *testing.T) {
		_, err := NewCodeRegistry(Params{Lifecycle: fxtest.NewLifecycle(t), Config: newProviderConfig(config.SecondFactorBackendRedis), Logger: logger})

		assert.Error(t, err)
	})

	t.Run("redis client only for the redis backend", func(t *testing.T) {
		client := NewRedisClient(RedisParams{Lifecycle: fxtest.NewLifecycle(t), Config: newProviderConfig(config.SecondFactorBackendMemory), Logger: logger})

		assert.Nil(t, client)
	})
}
