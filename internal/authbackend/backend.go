// Package authbackend provides the credential exchange used by the session store.
package authbackend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/resistance-admin/internal/apiclient"
	"github.com/spec-kit/resistance-admin/internal/auth"
	"github.com/spec-kit/resistance-admin/internal/config"
	"github.com/spec-kit/resistance-admin/internal/repository"
	"github.com/spec-kit/resistance-admin/internal/service"
	"github.com/spec-kit/resistance-admin/internal/session"
)

// Deps bundles what the factory may need. Accounts is optional in mock mode; the
// development accounts are seeded into memory when it is nil.
type Deps struct {
	Client   *apiclient.Client
	Accounts repository.AccountRepository
	Logger   *zap.Logger
}

// New selects the backend once from configuration: Local when mock services are
// enabled, Remote otherwise.
func New(ctx context.Context, cfg config.Config, deps Deps) (session.AuthBackend, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if !cfg.API.UseMockServices {
		if deps.Client == nil {
			return nil, fmt.Errorf("remote auth backend requires an API client")
		}
		logger.Debug("auth backend", zap.String("mode", "remote"), zap.String("base_url", deps.Client.BaseURL()))
		return NewRemote(deps.Client), nil
	}

	accounts := deps.Accounts
	if accounts == nil {
		accounts = repository.NewMemoryAccountRepository()
		hash := func(plain string) (string, error) { return auth.HashPassword(plain, cfg.Auth.BcryptCost) }
		if err := repository.Seed(ctx, accounts, repository.DevelopmentAccounts, hash); err != nil {
			return nil, err
		}
	}
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	logger.Debug("auth backend", zap.String("mode", "local"))
	return NewLocal(service.NewAuthService(accounts, tokens), cfg.API.MockAuthLatency(), logger), nil
}
