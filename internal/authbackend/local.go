package authbackend

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/resistance-admin/internal/domain"
	"github.com/spec-kit/resistance-admin/internal/service"
	"github.com/spec-kit/resistance-admin/internal/session"
	apperrors "github.com/spec-kit/resistance-admin/pkg/util"
)

const invalidCredentials = "Invalid credentials"

// Local is an in-process authority for offline development. It shares the credential
// check and token signing of the dev API server.
type Local struct {
	auth    *service.AuthService
	latency time.Duration
	logger  *zap.Logger
}

// NewLocal builds the simulated authority. latency delays every login.
func NewLocal(authService *service.AuthService, latency time.Duration, logger *zap.Logger) *Local {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Local{auth: authService, latency: latency, logger: logger}
}

func (l *Local) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	if err := sleep(ctx, l.latency); err != nil {
		return "", err
	}

	token, exp, account, err := l.auth.Login(ctx, creds.Identifier, creds.Password)
	if err != nil {
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) {
			return "", &session.AuthFailure{Message: domainErr.Message, Status: domainErr.HTTPStatus, Err: err}
		}
		return "", err
	}
	l.logger.Debug("issued token", zap.String("username", account.Username), zap.Time("expires_at", exp))
	return token, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
