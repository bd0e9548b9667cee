package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/resistance-admin/internal/auth"
	"github.com/spec-kit/resistance-admin/internal/config"
	"github.com/spec-kit/resistance-admin/internal/persistence"
	"github.com/spec-kit/resistance-admin/internal/repository"
)

// Accounts is the login directory used by the simulated authority.
type Accounts struct {
	Repo     repository.AccountRepository
	Hash     func(string) (string, error)
	Postgres *persistence.Postgres
}

// Close releases the database pool, if any.
func (a *Accounts) Close() {
	a.Postgres.Close()
}

// OpenAccounts opens the Postgres directory when POSTGRES_DSN is set and an in-memory
// one otherwise, then seeds the development logins.
func OpenAccounts(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Accounts, error) {
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	accounts := &Accounts{
		Postgres: pg,
		Hash:     func(plain string) (string, error) { return auth.HashPassword(plain, cfg.Auth.BcryptCost) },
	}
	if pg.Enabled() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				pg.Close()
				return nil, fmt.Errorf("run migrations: %w", err)
			}
		}
		accounts.Repo = repository.NewAccountRepository(pg.PoolHandle())
	} else {
		accounts.Repo = repository.NewMemoryAccountRepository()
	}

	if err := repository.Seed(ctx, accounts.Repo, repository.DevelopmentAccounts, accounts.Hash); err != nil {
		pg.Close()
		return nil, err
	}
	return accounts, nil
}
