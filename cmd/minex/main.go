package main

import (
	"context"
	"log/slog"
	"os"

	"minex/config"
	"minex/internal/delivery"
	"minex/internal/delivery/api"
	"minex/internal/infra/auth"
	logs "minex/internal/infra/log"
	"minex/internal/infra/metrics"
	"minex/internal/infra/persistence/memory"
	"minex/internal/infra/pubsub"
	"minex/internal/infra/qrcode"
	"minex/internal/infra/sanitize"
	"minex/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		memory.Module,
		pubsub.Module,
		injectService(),
		impl.Module,
		api.Module,
		injectDelivery(),
		fx.Invoke(
			memory.RunSeed,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		metrics.NewRecorder,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			sanitize.NewTextSanitizer,
			qrcode.NewQRCodeService,
			metrics.NewMetricsRecorder,
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
