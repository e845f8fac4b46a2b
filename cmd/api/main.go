package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	server "taskapp/internal/adapter/http"
	"taskapp/pkg/config"
	"taskapp/pkg/tracing"
)

func main() {
	cfg, err := config.Load()

	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zapLogger, err := zap.NewProduction()

	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}

	defer zapLogger.Sync()

	if cfg.OTLPEndpoint != "" {
		telemetry, err := tracing.InitTelemetry(ctx, tracing.TelemetryConfig{
			ServiceName:    "taskapp",
			ServiceVersion: "1.0.0",
			Environment:    cfg.Environment,
			OTLPEndpoint:   cfg.OTLPEndpoint,
		})

		if err != nil {
			log.Fatal("Failed to initialize telemetry: ", err)
		}

		defer telemetry.Shutdown(context.Background())
	}

	if err := server.StartServer(ctx, cfg, zapLogger); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}

	slog.Info("Shutting down gracefully...")
}
