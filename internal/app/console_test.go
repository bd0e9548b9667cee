package app

import (
	"bytes"
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/resistance-admin/internal/api/dto"
	httptransport "github.com/spec-kit/resistance-admin/internal/api/http"
	"github.com/spec-kit/resistance-admin/internal/api/http/handlers"
	"github.com/spec-kit/resistance-admin/internal/apiclient"
	"github.com/spec-kit/resistance-admin/internal/auth"
	"github.com/spec-kit/resistance-admin/internal/config"
	"github.com/spec-kit/resistance-admin/internal/domain"
	"github.com/spec-kit/resistance-admin/internal/observability"
	"github.com/spec-kit/resistance-admin/internal/resources"
	"github.com/spec-kit/resistance-admin/internal/router"
	"github.com/spec-kit/resistance-admin/internal/service"
	"github.com/spec-kit/resistance-admin/internal/session"
)

func testConfig() config.Config {
	return config.Config{
		API: config.APIConfig{
			BaseURL:         "http://127.0.0.1:1",
			TimeoutSeconds:  5,
			UseMockServices: true,
		},
		Session: config.SessionConfig{Storage: config.StorageMemory},
		Auth:    config.AuthConfig{JWTSecret: "secret", BcryptCost: 4, TokenTTLMinutes: 60},
	}
}

func TestMockConsoleSession(t *testing.T) {
	var notices bytes.Buffer
	ctx := context.Background()
	console, err := NewConsole(ctx, testConfig(), Options{Notices: &notices})
	require.NoError(t, err)
	defer console.Close()

	assert.False(t, console.Session.IsAuthenticated())
	assert.Equal(t, "/login?returnUrl=%2Fvictims", console.Navigator.Navigate(ctx, "/victims").Location)

	_, err = console.Session.Login(ctx, domain.Credentials{Identifier: "daemon1", Password: "wrong"})
	var failure *session.AuthFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "Invalid credentials", failure.Message)

	identity, err := console.Session.Login(ctx, domain.Credentials{Identifier: "daemon1", Password: "daemon123"})
	require.NoError(t, err)
	assert.Equal(t, "daemon1", identity.Identifier)

	result := console.Navigator.Navigate(ctx, "/users")
	assert.Equal(t, router.LandingPath, result.Location)
	assert.Contains(t, notices.String(), "Access denied")

	attempt, err := console.Resources.Attempts.Create(ctx, dtoAttempt("Target Beta"))
	require.NoError(t, err)
	assert.Equal(t, "daemon1", attempt.DaemonUsername)

	stats, err := console.Dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.MyRewards)

	console.Session.Logout(ctx)
	assert.Equal(t, router.LoginPath, console.Navigator.Location())
	assert.False(t, console.Session.IsAuthenticated())
}

func TestConsoleRestoresFromBolt(t *testing.T) {
	cfg := testConfig()
	cfg.Session = config.SessionConfig{Storage: config.StorageBolt, BoltPath: filepath.Join(t.TempDir(), "session.db")}
	ctx := context.Background()

	first, err := NewConsole(ctx, cfg, Options{})
	require.NoError(t, err)
	_, err = first.Session.Login(ctx, domain.Credentials{Identifier: "admin", Password: "admin123"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewConsole(ctx, cfg, Options{})
	require.NoError(t, err)
	defer second.Close()

	assert.True(t, second.Session.IsAuthenticated())
	assert.True(t, second.Session.HasElevatedRole())
	assert.Equal(t, "/users", second.Navigator.Navigate(ctx, "/users").Location)
}

func dtoAttempt(victim string) dto.CreateAttemptRequest {
	return dto.CreateAttemptRequest{VictimName: victim, Description: "Recon"}
}

// startServer runs the dev API server on a loopback port.
func startServer(t *testing.T, accounts *Accounts) string {
	t.Helper()
	tokens := auth.NewTokenManager("secret", time.Hour)
	authService := service.NewAuthService(accounts.Repo, tokens)
	catalog := resources.New(resources.ModeMock, resources.Options{Accounts: resources.NewAccountDirectory(accounts.Repo, accounts.Hash)})

	app := httptransport.NewApp(httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "test", nil),
		Auth:           handlers.NewAuthHandler(authService, catalog.Profile),
		Catalog:        catalog,
		AuthMiddleware: auth.NewAuthMiddleware(tokens, accounts.Repo),
		Metrics:        observability.NewMetrics(),
	}, httptransport.MiddlewareConfig{Logger: zap.NewNop()})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String()
}

func TestRemoteConsoleAgainstDevServer(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	accounts, err := OpenAccounts(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer accounts.Close()

	cfg.API.BaseURL = startServer(t, accounts)
	cfg.API.UseMockServices = false

	console, err := NewConsole(ctx, cfg, Options{})
	require.NoError(t, err)
	defer console.Close()

	_, err = console.Session.Login(ctx, domain.Credentials{Identifier: "daemon2", Password: "nope"})
	var failure *session.AuthFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "Invalid credentials", failure.Message)

	_, err = console.Session.Login(ctx, domain.Credentials{Identifier: "daemon2", Password: "daemon123"})
	require.NoError(t, err)

	me, err := console.Resources.Profile.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "daemon2", me.Username)

	page, err := console.Resources.Attempts.List(ctx, domain.ListParams{DaemonUsername: "daemon2"})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)

	_, err = console.Resources.Users.List(ctx, domain.ListParams{})
	assert.Equal(t, 403, apiclient.StatusOf(err))
	assert.True(t, console.Session.IsAuthenticated(), "403 keeps the session")

	// A rejected login while signed in must not end the current session.
	_, err = console.Session.Login(ctx, domain.Credentials{Identifier: "admin", Password: "nope"})
	require.Error(t, err)
	assert.True(t, console.Session.IsAuthenticated())

	require.NoError(t, accounts.Repo.Delete(ctx, "daemon2"))
	_, err = console.Resources.Victims.List(ctx, domain.ListParams{})
	require.Error(t, err)
	assert.True(t, apiclient.IsUnauthorized(err))
	_, ok := console.Session.CurrentToken()
	assert.False(t, ok)
	assert.False(t, console.Session.IsAuthenticated())
	assert.Equal(t, router.LoginPath, console.Navigator.Location())
}
