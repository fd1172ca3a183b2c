package main

import (
	"fmt"
	"testing"
	"time"

	"vigil/internal/delivery"
	"vigil/internal/domain/service"
	"vigil/internal/infra/persistence/postgres"
	"vigil/internal/usecase"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func appOptions() []fx.Option {
	return []fx.Option{
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
	}
}

func TestApp_Validate(t *testing.T) {
	options := append(appOptions(), fx.Invoke(bootstrapSuperAdmin, startServer))

	require.NoError(t, fx.ValidateApp(options...))
}

// TestApp_StartsWithShippedConfig builds every provider against config/config.yaml.
// Only the database is swapped for an in-memory one.
func TestApp_StartsWithShippedConfig(t *testing.T) {
	dsn := fmt.Sprintf("file:vigil_app_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true, Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	var (
		deliveries []delivery.Delivery
		publisher  service.EventPublisher
		authUC     usecase.AuthUsecase
	)
	options := append(appOptions(),
		fx.Replace(db),
		fx.Populate(&publisher, &authUC),
		fx.Invoke(func(params startServerParams) {
			deliveries = params.Deliveries
		}),
	)

	app := fxtest.New(t, options...)
	app.RequireStart()
	defer app.RequireStop()

	assert.Len(t, deliveries, 1)
	assert.NotNil(t, publisher)
	assert.NotNil(t, authUC)
}
