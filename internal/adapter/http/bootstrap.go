package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/zap"

	"taskapp/internal/adapter/cache/memory"
	"taskapp/internal/adapter/cache/redis"
	"taskapp/internal/adapter/database/postgres"
	pgrepository "taskapp/internal/adapter/database/postgres/repository"
	"taskapp/internal/adapter/database/sqlite"
	"taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/adapter/http/routes"
	"taskapp/internal/core/port"
	"taskapp/pkg/auth"
	"taskapp/pkg/config"
	"taskapp/pkg/metrics"
)

// StartServer wires the full stack and blocks serving HTTP until the context
// is cancelled or the listener fails.
func StartServer(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) error {
	userRepo, taskRepo, closeDB, err := openRepositories(ctx, cfg)

	if err != nil {
		return err
	}

	defer closeDB()

	token := auth.NewJWT(cfg.JWTSecret, cfg.TokenTTL)
	appMetrics := metrics.NewAppMetrics()
	container := NewContainer(userRepo, taskRepo, token, appMetrics)

	cache, err := openCache(ctx, cfg)

	if err != nil {
		return err
	}

	defer cache.Close()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	router := routes.SetupRouter(routes.HandlersConfig{
		SessionHandler: container.SessionHandler,
		UserHandler:    container.UserHandler,
		TaskHandler:    container.TaskHandler,
		HealthHandler:  container.HealthHandler,
	}, routes.GateConfig{
		Users: container.UserRepo,
		Token: token,
	}, appMetrics, logger, zapLogger, cache, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Server starting",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"rate_limit_enabled", cfg.RateLimitEnabled,
		"cache_enabled", cfg.CacheEnabled)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func openRepositories(ctx context.Context, cfg *config.Config) (port.UserRepository, port.TaskRepository, func(), error) {
	if strings.HasPrefix(cfg.DatabaseURL, "postgres://") || strings.HasPrefix(cfg.DatabaseURL, "postgresql://") {
		db, err := postgres.NewDB(ctx, cfg.DatabaseURL, "infra/migrations")

		if err != nil {
			return nil, nil, nil, fmt.Errorf("open postgres: %w", err)
		}

		return pgrepository.NewUserRepository(db), pgrepository.NewTaskRepository(db), db.Close, nil
	}

	path := strings.TrimPrefix(cfg.DatabaseURL, "sqlite://")

	db, err := sqlite.NewDB(path, "db/migrations")

	if err != nil {
		return nil, nil, nil, fmt.Errorf("open sqlite: %w", err)
	}

	return repository.NewUserRepository(db), repository.NewTaskRepository(db), func() { db.Close() }, nil
}

func openCache(ctx context.Context, cfg *config.Config) (port.CacheRepository, error) {
	if cfg.RedisURL == "" {
		return memory.New(), nil
	}

	cache, err := redis.New(ctx, cfg.RedisURL)

	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return cache, nil
}
