package main

import (
	"context"
	"log/slog"
	"os"

	"bridge/config"
	"bridge/internal/delivery"
	"bridge/internal/delivery/api"
	"bridge/internal/delivery/api/router/handler"
	"bridge/internal/domain/service"
	"bridge/internal/infra/cache"
	logs "bridge/internal/infra/log"
	"bridge/internal/infra/persistence"
	"bridge/internal/infra/pubsub"
	"bridge/internal/infra/qrcode"
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
		injectService(),
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
		),
		persistence.Module,
		cache.Module,
		pubsub.Module,
	)
}

func injectService() fx.Option {
	return fx.Provide(
		newQRCodeService,
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) (service.QRCodeService, error) {
	if cfg.QRCode == nil {
		return qrcode.NewQRCodeService(0, "M", "")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewUserService,
		impl.NewVendorService,
		impl.NewProductService,
		impl.NewReviewService,
	)
}

func injectHandler() fx.Option {
	return fx.Provide(
		handler.NewUserHandler,
		handler.NewVendorHandler,
		handler.NewProductHandler,
		handler.NewReviewHandler,
		handler.NewAdminHandler,
	)
}

func injectDelivery() fx.Option {
	return fx.Provide(
		fx.Annotate(
			api.NewServer,
			fx.ResultTags(`group:"deliveries"`),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
