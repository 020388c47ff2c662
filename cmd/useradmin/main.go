// Command useradmin activates or deactivates an account by email.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/modular-api/internal/auth"
	"github.com/spec-kit/modular-api/internal/config"
	"github.com/spec-kit/modular-api/internal/observability"
	"github.com/spec-kit/modular-api/internal/persistence"
	"github.com/spec-kit/modular-api/internal/repository"
	"github.com/spec-kit/modular-api/internal/service"
)

func main() {
	email := flag.String("email", "", "account email")
	deactivate := flag.Bool("deactivate", false, "deactivate instead of activate")
	flag.Parse()

	if *email == "" {
		log.Fatal("-email is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	authService := service.NewAuthService(service.AuthDependencies{
		Store:  repository.NewPostgresStore(pg.PoolHandle()),
		Hasher: auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		Logger: logger,
	})

	active := !*deactivate
	if err := authService.SetActive(ctx, *email, active); err != nil {
		logger.Fatal("update failed", zap.String("email", *email), zap.Error(err))
	}
	logger.Info("account updated", zap.String("email", *email), zap.Bool("active", active))
}
