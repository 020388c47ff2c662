package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/modular-api/internal/api/http/handlers"
	"github.com/spec-kit/modular-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Items          *handlers.ItemsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/token", cfg.Auth.Token)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)
	api.Post("/items", cfg.Items.Create)
	api.Get("/items", cfg.Items.List)
	api.Get("/items/:id", cfg.Items.Get)
	api.Put("/items/:id", cfg.Items.Update)
	api.Delete("/items/:id", cfg.Items.Delete)
}
