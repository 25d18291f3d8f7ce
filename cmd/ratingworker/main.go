package main

import (
	"context"
	"log/slog"
	"os"

	"bridge/config"
	"bridge/internal/delivery"
	"bridge/internal/delivery/worker"
	"bridge/internal/delivery/worker/handler"
	"bridge/internal/infra/cache"
	logs "bridge/internal/infra/log"
	"bridge/internal/infra/persistence"
	"bridge/internal/infra/pubsub"
	"bridge/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			// The worker consumes review events and never publishes them.
			pubsub.NewNoopPublisher,
		),
		persistence.Module,
		cache.Module,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewReviewService,
	)
}

func injectHandler() fx.Option {
	return fx.Provide(
		handler.NewPushHandler,
	)
}

func injectDelivery() fx.Option {
	return fx.Provide(
		fx.Annotate(
			worker.NewServer,
			fx.ResultTags(`group:"deliveries"`),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
