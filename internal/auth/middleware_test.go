package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/resistance-admin/internal/domain"
	"github.com/spec-kit/resistance-admin/internal/repository"
	apperrors "github.com/spec-kit/resistance-admin/pkg/util"
)

func newGuardedApp(t *testing.T, accounts AccountLookup) (*fiber.App, *TokenManager) {
	t.Helper()
	tm := NewTokenManager("secret", time.Hour)
	mw := NewAuthMiddleware(tm, accounts)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).SendString(domainErr.Code)
		},
	})
	app.Get("/me", mw.Handle, RequireAuthenticated(), func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		return c.SendString(principal.Username + ":" + string(principal.Role))
	})
	app.Get("/users", mw.Handle, RequireRole(domain.RoleSuperadmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, tm
}

func doGet(t *testing.T, app *fiber.App, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	buf := make([]byte, 256)
	n, _ := resp.Body.Read(buf)
	return resp.StatusCode, string(buf[:n])
}

func TestAuthMiddleware(t *testing.T) {
	app, tm := newGuardedApp(t, nil)
	adminToken, _, err := tm.GenerateToken("admin", domain.RoleSuperadmin)
	require.NoError(t, err)
	daemonToken, _, err := tm.GenerateToken("daemon1", domain.RoleDaemon)
	require.NoError(t, err)

	status, body := doGet(t, app, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body)

	status, _ = doGet(t, app, "/me", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = doGet(t, app, "/me", daemonToken)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "daemon1:daemon", body)

	status, body = doGet(t, app, "/users", daemonToken)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body)

	status, _ = doGet(t, app, "/users", adminToken)
	assert.Equal(t, http.StatusOK, status)
}

func TestAuthMiddlewareRejectsDeletedAccounts(t *testing.T) {
	accounts := repository.NewMemoryAccountRepository()
	require.NoError(t, accounts.Create(context.Background(), &domain.Account{Username: "daemon1", Role: domain.RoleDaemon}))

	app, tm := newGuardedApp(t, accounts)
	token, _, err := tm.GenerateToken("daemon1", domain.RoleDaemon)
	require.NoError(t, err)

	status, _ := doGet(t, app, "/me", token)
	assert.Equal(t, http.StatusOK, status)

	require.NoError(t, accounts.Delete(context.Background(), "daemon1"))
	status, _ = doGet(t, app, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, status)
}
