package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/resistance-admin/internal/api/http"
	"github.com/spec-kit/resistance-admin/internal/api/http/handlers"
	"github.com/spec-kit/resistance-admin/internal/app"
	"github.com/spec-kit/resistance-admin/internal/auth"
	"github.com/spec-kit/resistance-admin/internal/config"
	"github.com/spec-kit/resistance-admin/internal/observability"
	"github.com/spec-kit/resistance-admin/internal/persistence"
	"github.com/spec-kit/resistance-admin/internal/resources"
	"github.com/spec-kit/resistance-admin/internal/service"
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

	accounts, err := app.OpenAccounts(ctx, *cfg, logger)
	if err != nil {
		logger.Fatal("failed to open accounts", zap.Error(err))
	}
	defer accounts.Close()

	dependencies := map[string]handlers.Pinger{}
	if accounts.Postgres.Enabled() {
		dependencies["postgres"] = accounts.Postgres
	}
	if cfg.Session.Storage == config.StorageRedis {
		redis := persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		dependencies["redis"] = redis
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	authService := service.NewAuthService(accounts.Repo, tokens)
	catalog := resources.New(resources.ModeMock, resources.Options{
		Latency:  cfg.API.MockLatency(),
		Accounts: resources.NewAccountDirectory(accounts.Repo, accounts.Hash),
	})

	server := httptransport.NewApp(httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies),
		Auth:           handlers.NewAuthHandler(authService, catalog.Profile),
		Catalog:        catalog,
		AuthMiddleware: auth.NewAuthMiddleware(tokens, accounts.Repo),
		Metrics:        observability.NewMetrics(),
	}, httptransport.MiddlewareConfig{
		AppName: cfg.App.Name,
		Logger:  logger,
		Timeout: cfg.App.RequestTimeout(),
	})

	go func() {
		logger.Info("dev api listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := server.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = server.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
