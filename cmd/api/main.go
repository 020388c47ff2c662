package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/modular-api/internal/api/http"
	"github.com/spec-kit/modular-api/internal/api/http/handlers"
	"github.com/spec-kit/modular-api/internal/auth"
	"github.com/spec-kit/modular-api/internal/config"
	"github.com/spec-kit/modular-api/internal/events"
	"github.com/spec-kit/modular-api/internal/observability"
	"github.com/spec-kit/modular-api/internal/persistence"
	"github.com/spec-kit/modular-api/internal/repository"
	"github.com/spec-kit/modular-api/internal/service"
	"github.com/spec-kit/modular-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	tokens, err := auth.NewTokenCodec(cfg.Auth)
	if err != nil {
		logger.Fatal("invalid token settings", zap.Error(err))
	}

	store := repository.NewPostgresStore(pg.PoolHandle())
	dispatcher := events.NewInMemoryDispatcher()
	streamSink := events.NewRedisStreamSink(redis.Client, cfg.Events.StreamKey, cfg.Events.StreamMaxLen)
	worker.StartAuditWorker(ctx, service.NewAuditService(dispatcher, logger, streamSink.Handle))

	authService := service.NewAuthService(service.AuthDependencies{
		Store:      store,
		Hasher:     auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		Tokens:     tokens,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	itemService := service.NewItemService(store)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, metrics, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:           handlers.NewAuthHandler(authService),
		Items:          handlers.NewItemsHandler(itemService),
		AuthMiddleware: auth.NewAuthMiddleware(authService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
