package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/spec-kit/resistance-admin/internal/domain"
)

// SeedAccount is a development login.
type SeedAccount struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// DevelopmentAccounts are the logins available in mock mode.
var DevelopmentAccounts = []SeedAccount{
	{Username: "admin", Email: "admin@resistance.local", Password: "admin123", Role: domain.RoleSuperadmin},
	{Username: "daemon1", Email: "daemon1@resistance.local", Password: "daemon123", Role: domain.RoleDaemon},
	{Username: "daemon2", Email: "daemon2@resistance.local", Password: "daemon123", Role: domain.RoleDaemon},
}

// Seed creates the given accounts, skipping those that already exist. hash turns a
// plaintext password into its stored form.
func Seed(ctx context.Context, repo AccountRepository, seeds []SeedAccount, hash func(string) (string, error)) error {
	for _, seed := range seeds {
		passwordHash, err := hash(seed.Password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", seed.Username, err)
		}
		err = repo.Create(ctx, &domain.Account{
			Username:     seed.Username,
			Email:        seed.Email,
			PasswordHash: passwordHash,
			Role:         seed.Role,
		})
		if err != nil && !errors.Is(err, ErrDuplicate) {
			return fmt.Errorf("seed account %s: %w", seed.Username, err)
		}
	}
	return nil
}
