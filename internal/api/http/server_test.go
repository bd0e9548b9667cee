package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/resistance-admin/internal/api/http/handlers"
	"github.com/spec-kit/resistance-admin/internal/auth"
	"github.com/spec-kit/resistance-admin/internal/observability"
	"github.com/spec-kit/resistance-admin/internal/repository"
	"github.com/spec-kit/resistance-admin/internal/resources"
	"github.com/spec-kit/resistance-admin/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	accounts := repository.NewMemoryAccountRepository()
	hash := func(plain string) (string, error) { return auth.HashPassword(plain, 4) }
	require.NoError(t, repository.Seed(context.Background(), accounts, repository.DevelopmentAccounts, hash))

	authService := service.NewAuthService(accounts, auth.NewTokenManager("secret", time.Hour))
	catalog := resources.New(resources.ModeMock, resources.Options{
		Accounts: resources.NewAccountDirectory(accounts, hash),
	})
	metrics := observability.NewMetrics()

	return NewApp(RouteConfig{
		Health:         handlers.NewHealthHandler("resistance-admin", "test", nil),
		Auth:           handlers.NewAuthHandler(authService, catalog.Profile),
		Catalog:        catalog,
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), accounts),
		Metrics:        metrics,
	}, MiddlewareConfig{AppName: "test", Logger: zap.NewNop(), Timeout: 5 * time.Second})
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func login(t *testing.T, app *fiber.App, identifier, password string) string {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/auth/login", "", map[string]string{"identifier": identifier, "password": password})
	require.Equal(t, http.StatusOK, status, body)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func errorCode(body map[string]any) string {
	envelope, _ := body["error"].(map[string]any)
	code, _ := envelope["code"].(string)
	return code
}

func TestLoginAndMe(t *testing.T) {
	app := newTestApp(t)

	status, body := call(t, app, http.MethodPost, "/auth/login", "", map[string]string{"identifier": "admin", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(body))

	status, body = call(t, app, http.MethodPost, "/auth/login", "", map[string]string{"identifier": "admin"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	token := login(t, app, "admin", "admin123")
	status, body = call(t, app, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "admin", body["username"])
	assert.Equal(t, "superadmin", body["role"])

	status, _ = call(t, app, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestResourceRoutes(t *testing.T) {
	app := newTestApp(t)
	daemon := login(t, app, "daemon1", "daemon123")

	status, body := call(t, app, http.MethodGet, "/victims", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(body))

	status, body = call(t, app, http.MethodGet, "/attempts?page=2&limit=3", daemon, nil)
	require.Equal(t, http.StatusOK, status)
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(2), pagination["totalPages"])
	assert.Len(t, body["data"], 1)

	status, body = call(t, app, http.MethodGet, "/victims/Target%20Alpha", daemon, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(8), body["dangerLevel"])

	status, body = call(t, app, http.MethodPost, "/attempts", daemon, map[string]string{"victimName": "Target Gamma", "description": "Perimeter sweep"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "daemon1", body["daemonUsername"])
	assert.Equal(t, "Pending", body["state"])

	status, body = call(t, app, http.MethodPost, "/victims", daemon, map[string]any{"name": "Target Alpha", "dangerLevel": 3})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", errorCode(body))

	status, body = call(t, app, http.MethodGet, "/content/99", daemon, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Content not found", body["error"].(map[string]any)["message"])

	status, _ = call(t, app, http.MethodDelete, "/reports/2", daemon, nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestUsersRequireSuperadmin(t *testing.T) {
	app := newTestApp(t)
	daemon := login(t, app, "daemon1", "daemon123")
	admin := login(t, app, "admin", "admin123")

	status, body := call(t, app, http.MethodGet, "/users", daemon, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(body))

	status, _ = call(t, app, http.MethodGet, "/users", admin, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, app, http.MethodPost, "/users", admin, map[string]string{"username": "daemon3", "password": "daemon123", "role": "daemon"})
	require.Equal(t, http.StatusCreated, status)
	fresh := login(t, app, "daemon3", "daemon123")

	status, _ = call(t, app, http.MethodDelete, "/users/daemon3", admin, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, _ = call(t, app, http.MethodGet, "/victims", fresh, nil)
	assert.Equal(t, http.StatusUnauthorized, status, "tokens of deleted accounts stop working")
}

func TestOperationalRoutes(t *testing.T) {
	app := newTestApp(t)

	status, body := call(t, app, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alive", body["status"])

	status, _ = call(t, app, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = call(t, app, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "resistance_admin_http_requests_total")
}

func TestAttemptOwnerComesFromToken(t *testing.T) {
	app := newTestApp(t)
	daemon := login(t, app, "daemon2", "daemon123")

	status, body := call(t, app, http.MethodPost, "/attempts", daemon, map[string]string{
		"victimName":     "Target Beta",
		"description":    "Decoy",
		"daemonUsername": "daemon1",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "daemon2", body["daemonUsername"])

	status, body = call(t, app, http.MethodGet, "/attempts?daemonUsername=daemon2", daemon, nil)
	require.Equal(t, http.StatusOK, status)
	for _, item := range body["data"].([]any) {
		assert.Equal(t, "daemon2", item.(map[string]any)["daemonUsername"])
	}
}
