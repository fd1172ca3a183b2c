package secondfactor

import (
	"context"
	"log/slog"

	"vigil/config"
	"vigil/internal/domain/lifecycle"
	"vigil/internal/domain/service"
	"vigil/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params defines the dependencies for the code registry
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Redis     redis.UniversalClient // nil unless the redis backend is selected
}

// NewCodeRegistry selects the backend configured under secondFactor.backend
// and ties its background work to the application lifecycle.
func NewCodeRegistry(params Params) (service.CodeRegistry, error) {
	ttl := params.Config.Auth.SecondFactorTTL

	switch params.Config.SecondFactor.Backend {
	case config.SecondFactorBackendRedis:
		if params.Redis == nil {
			return nil, errors.New("redis backend selected but no redis client is configured")
		}
		params.Logger.Info("Using redis second factor registry")

		return NewRedisRegistry(params.Redis, ttl, params.Config.SecondFactor.KeyPrefix, params.Logger), nil

	case config.SecondFactorBackendMemory, "":
		registry := NewMemoryRegistry(ttl, params.Config.Auth.SweepInterval, params.Logger)
		params.Lifecycle.Append(fx.Hook{
			OnStart: func(context.Context) error {
				registry.Start()

				return nil
			},
			OnStop: registry.Stop,
		})
		params.Logger.Info("Using in-memory second factor registry")

		return registry, nil

	default:
		return nil, errors.Errorf("unsupported second factor backend: %s", params.Config.SecondFactor.Backend)
	}
}

// RedisParams defines the dependencies for the redis client
type RedisParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

// NewRedisClient connects to redis only when the redis backend is selected
// and returns nil otherwise.
func NewRedisClient(params RedisParams) redis.UniversalClient {
	if params.Config.SecondFactor.Backend != config.SecondFactorBackendRedis {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     params.Config.Redis.Addr,
		Password: params.Config.Redis.Password,
		DB:       params.Config.Redis.DB,
	})

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(pingCtx).Err(); err != nil {
				return errors.Wrap(err, "redis ping failed")
			}
			params.Logger.Info("Connected to redis", slog.String("addr", params.Config.Redis.Addr))

			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return client
}
