package authbackend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/resistance-admin/internal/apiclient"
	"github.com/spec-kit/resistance-admin/internal/auth"
	"github.com/spec-kit/resistance-admin/internal/config"
	"github.com/spec-kit/resistance-admin/internal/domain"
	"github.com/spec-kit/resistance-admin/internal/repository"
	"github.com/spec-kit/resistance-admin/internal/service"
	"github.com/spec-kit/resistance-admin/internal/session"
)

func newLocal(t *testing.T) *Local {
	t.Helper()
	accounts := repository.NewMemoryAccountRepository()
	hash := func(plain string) (string, error) { return auth.HashPassword(plain, 4) }
	require.NoError(t, repository.Seed(context.Background(), accounts, repository.DevelopmentAccounts, hash))
	return NewLocal(service.NewAuthService(accounts, auth.NewTokenManager("secret", 24*time.Hour)), 0, nil)
}

func TestLocalLogin(t *testing.T) {
	backend := newLocal(t)

	token, err := backend.Login(context.Background(), domain.Credentials{Identifier: "admin", Password: "admin123"})
	require.NoError(t, err)

	claims, ok := session.Decode(token)
	require.True(t, ok)
	assert.Equal(t, "admin", claims.Identifier())
	assert.Equal(t, domain.RoleSuperadmin, claims.Role())
	assert.True(t, claims.ValidAt(time.Now().Add(23*time.Hour)))
	assert.False(t, claims.ValidAt(time.Now().Add(25*time.Hour)))

	token, err = backend.Login(context.Background(), domain.Credentials{Identifier: "daemon2@resistance.local", Password: "daemon123"})
	require.NoError(t, err)
	claims, _ = session.Decode(token)
	assert.Equal(t, "daemon2", claims.Identifier())
	assert.Equal(t, domain.RoleDaemon, claims.Role())
}

func TestLocalLoginRejections(t *testing.T) {
	backend := newLocal(t)

	for _, creds := range []domain.Credentials{
		{Identifier: "admin", Password: "wrong"},
		{Identifier: "nobody", Password: "admin123"},
	} {
		_, err := backend.Login(context.Background(), creds)
		var failure *session.AuthFailure
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, "Invalid credentials", failure.Message)
		assert.Equal(t, http.StatusUnauthorized, failure.Status)
	}
}

func TestLocalLoginHonoursCancellation(t *testing.T) {
	backend := newLocal(t)
	backend.latency = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := backend.Login(ctx, domain.Credentials{Identifier: "admin", Password: "admin123"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRemoteLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		switch body["identifier"] {
		case "admin":
			_, _ = w.Write([]byte(`{"token":"abc.def.ghi"}`))
		case "legacy":
			_, _ = w.Write([]byte(`{"accessToken":"legacy.token"}`))
		case "empty":
			_, _ = w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Bad credentials","attemptsLeft":2}`))
		}
	}))
	defer srv.Close()

	backend := NewRemote(apiclient.New(srv.URL, 0, nil))

	token, err := backend.Login(context.Background(), domain.Credentials{Identifier: "admin", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = backend.Login(context.Background(), domain.Credentials{Identifier: "legacy", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "legacy.token", token)

	_, err = backend.Login(context.Background(), domain.Credentials{Identifier: "empty", Password: "x"})
	var failure *session.AuthFailure
	require.ErrorAs(t, err, &failure)

	_, err = backend.Login(context.Background(), domain.Credentials{Identifier: "mallory", Password: "x"})
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "Bad credentials", failure.Message)
	assert.Equal(t, http.StatusUnauthorized, failure.Status)
	assert.Equal(t, float64(2), failure.Payload["attemptsLeft"])
}

func TestRemoteLoginUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewRemote(apiclient.New(url, time.Second, nil)).Login(context.Background(), domain.Credentials{Identifier: "a", Password: "b"})
	var failure *session.AuthFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "authority unreachable", failure.Message)
}

func TestNewSelectsVariant(t *testing.T) {
	cfg := config.Config{
		API:  config.APIConfig{UseMockServices: true},
		Auth: config.AuthConfig{JWTSecret: "secret", BcryptCost: 4},
	}
	backend, err := New(context.Background(), cfg, Deps{})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, backend)

	_, err = backend.Login(context.Background(), domain.Credentials{Identifier: "daemon1", Password: "daemon123"})
	assert.NoError(t, err)

	cfg.API.UseMockServices = false
	_, err = New(context.Background(), cfg, Deps{})
	assert.Error(t, err)

	backend, err = New(context.Background(), cfg, Deps{Client: apiclient.New("http://localhost:1", 0, nil)})
	require.NoError(t, err)
	assert.IsType(t, &Remote{}, backend)
}
