package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"usergate/config"
	"usergate/internal/delivery"
	"usergate/internal/delivery/http"
	"usergate/internal/delivery/http/middleware"
	"usergate/internal/delivery/http/router/handler"
	"usergate/internal/domain/repository"
	"usergate/internal/infra/auth"
	logs "usergate/internal/infra/log"
	"usergate/internal/infra/persistence/memory"
	"usergate/internal/infra/persistence/postgres"
	"usergate/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectRepo() fx.Option {
	return fx.Provide(
		newUserRepository,
	)
}

// newUserRepository picks the account store: PostgreSQL when configured,
// the in-memory store for store-less local runs.
func newUserRepository(params postgres.Params) (repository.UserRepository, error) {
	if params.Config.Postgres == nil {
		params.Logger.Warn("Postgres not configured, using the in-memory account store")

		return memory.NewUserRepository(), nil
	}

	db, err := postgres.New(params)
	if err != nil {
		return nil, err
	}

	return postgres.NewUserRepository(db), nil
}

func injectService() fx.Option {
	return fx.Provide(
		auth.NewBcryptHasher,
		auth.NewJWTService,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewAccountService,
	)
}

func injectMiddleware() fx.Option {
	return fx.Provide(
		middleware.NewAuthMiddleware,
		middleware.NewErrorMiddleware,
		middleware.NewRequestIDMiddleware,
	)
}

func injectHandler() fx.Option {
	return fx.Provide(
		handler.NewAccountHandler,
	)
}

func injectDelivery() fx.Option {
	return fx.Provide(
		fx.Annotate(
			http.NewServer,
			fx.ResultTags(`group:"deliveries"`),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
