package main

import (
	"context"
	"log/slog"
	"os"

	"vigil/config"
	"vigil/internal/delivery"
	"vigil/internal/delivery/api"
	"vigil/internal/delivery/api/middleware"
	"vigil/internal/delivery/api/router/handler"
	"vigil/internal/domain/service"
	"vigil/internal/infra/auth"
	"vigil/internal/infra/auth/google"
	logs "vigil/internal/infra/log"
	"vigil/internal/infra/mail"
	"vigil/internal/infra/notification"
	"vigil/internal/infra/persistence/postgres"
	"vigil/internal/infra/pubsub"
	"vigil/internal/infra/realtime"
	"vigil/internal/infra/secondfactor"
	"vigil/internal/usecase"
	"vigil/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			bootstrapSuperAdmin,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		secondfactor.NewRedisClient,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewNotificationRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			google.NewAuthService,
			secondfactor.NewCodeRegistry,
			mail.NewMailer,
			mail.NewCodeSender,
			fx.Annotate(
				realtime.NewHubWithLifecycle,
				fx.As(fx.Self(), new(service.Broadcaster)),
			),
			notification.NewFirebaseService,
			pubsub.NewEventPublisher,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewAccessService,
			impl.NewUserService,
			impl.NewNotificationService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewNotificationHandler,
			handler.NewRealtimeHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// bootstrapSuperAdmin seeds the configured SUPERADMIN once the database is reachable.
func bootstrapSuperAdmin(lc fx.Lifecycle, userUC usecase.UserUsecase) {
	lc.Append(fx.Hook{
		OnStart: userUC.EnsureSuperAdmin,
	})
}

func startServer(ctx context.Context, params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, d := range params.Deliveries {
				go func() {
					if err := d.Serve(ctx); err != nil {
						params.Logger.Error("Failed to start server", slog.Any("error", err))
						os.Exit(1)
					}
				}()
			}

			return nil
		},
	})
}
