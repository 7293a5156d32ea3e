// Command relay receives notification events pushed by Pub/Sub.
package main

import (
	"context"
	"log/slog"
	"os"

	"minex/config"
	"minex/internal/delivery"
	"minex/internal/delivery/worker"
	"minex/internal/delivery/worker/handler"
	logs "minex/internal/infra/log"
	"minex/internal/infra/metrics"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			metrics.NewRecorder,
			func(r *metrics.Recorder) handler.EventRecorder { return r },
			handler.NewPushHandler,
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start relay", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
