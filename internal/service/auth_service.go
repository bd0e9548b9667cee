package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/resistance-admin/internal/auth"
	"github.com/spec-kit/resistance-admin/internal/domain"
	"github.com/spec-kit/resistance-admin/internal/repository"
	apperrors "github.com/spec-kit/resistance-admin/pkg/util"
)

const invalidCredentials = "Invalid credentials"

// AuthService verifies credentials against the account directory and issues tokens.
type AuthService struct {
	accounts repository.AccountRepository
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(accounts repository.AccountRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{accounts: accounts, tokenMgr: tokens}
}

// TokenManager exposes the signer so the HTTP middleware verifies with the same key.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Accounts exposes the account directory.
func (s *AuthService) Accounts() repository.AccountRepository {
	return s.accounts
}

// Login checks identifier (username or email) and password and returns a signed token.
// Unknown accounts and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, time.Time, *domain.Account, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return "", time.Time{}, nil, apperrors.NewValidationError("identifier and password are required", nil)
	}

	account, err := s.accounts.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", time.Time{}, nil, apperrors.NewUnauthorized(invalidCredentials)
		}
		return "", time.Time{}, nil, err
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return "", time.Time{}, nil, apperrors.NewUnauthorized(invalidCredentials)
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.Username, account.Role)
	if err != nil {
		return "", time.Time{}, nil, err
	}
	return token, exp, account, nil
}
