package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/spec-kit/resistance-admin/internal/api/http/handlers"
	"github.com/spec-kit/resistance-admin/internal/auth"
	"github.com/spec-kit/resistance-admin/internal/domain"
	"github.com/spec-kit/resistance-admin/internal/observability"
	"github.com/spec-kit/resistance-admin/internal/resources"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Catalog        *resources.Catalog
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.Me)

	secured := func(extra ...fiber.Handler) []fiber.Handler {
		return append([]fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), actorMiddleware}, extra...)
	}
	handlers.RegisterResource(app.Group("/victims", secured()...), cfg.Catalog.Victims)
	handlers.RegisterResource(app.Group("/attempts", secured()...), cfg.Catalog.Attempts)
	handlers.RegisterResource(app.Group("/reports", secured()...), cfg.Catalog.Reports)
	handlers.RegisterResource(app.Group("/rewards", secured()...), cfg.Catalog.Rewards)
	handlers.RegisterResource(app.Group("/content", secured()...), cfg.Catalog.Content)
	handlers.RegisterResource(app.Group("/users", secured(auth.RequireRole(domain.RoleSuperadmin))...), cfg.Catalog.Users)
}

// MiddlewareConfig carries the app-wide middleware settings.
type MiddlewareConfig struct {
	AppName string
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewApp builds the fiber app with middlewares and routes registered.
func NewApp(cfg RouteConfig, mw MiddlewareConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               mw.AppName,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, mw.Logger, cfg.Metrics, mw.Timeout)
	RegisterRoutes(app, cfg)
	return app
}
