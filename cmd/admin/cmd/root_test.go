package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/resistance-admin/internal/app"
	"github.com/spec-kit/resistance-admin/internal/config"
)

type cli struct {
	t       *testing.T
	cfg     config.Config
	notices bytes.Buffer
}

func newCLI(t *testing.T) *cli {
	return &cli{t: t, cfg: config.Config{
		API: config.APIConfig{
			BaseURL:         "http://127.0.0.1:1",
			TimeoutSeconds:  5,
			UseMockServices: true,
		},
		Session: config.SessionConfig{
			Storage:  config.StorageBolt,
			BoltPath: filepath.Join(t.TempDir(), "session.db"),
		},
		Auth: config.AuthConfig{JWTSecret: "secret", BcryptCost: 4, TokenTTLMinutes: 60},
	}}
}

// run executes one CLI invocation in its own console, as separate processes would.
func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	env := &Environment{
		Load:    func() (*config.Config, error) { cfg := c.cfg; return &cfg, nil },
		Options: app.Options{Logger: zap.NewNop(), Notices: &c.notices},
	}
	root := NewRootCommand(env)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	require.NoError(c.t, env.Close())
	return out.String(), err
}

func TestLoginPersistsAcrossInvocations(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("", "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)

	out, err := c.run("", "login", "-u", "admin", "-p", "admin123")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as admin (superadmin)")
	assert.Contains(t, out, "Location: /dashboard")

	out, err = c.run("", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Identifier: admin")
	assert.Contains(t, out, "Elevated:   true")

	out, err = c.run("", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Location: /login")

	_, err = c.run("", "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestLoginPromptsForMissingCredentials(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("daemon1\ndaemon123\n", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Username or email: ")
	assert.Contains(t, out, "Logged in as daemon1 (daemon)")
}

func TestLoginFailureReportsMessage(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("", "login", "-u", "daemon1", "-p", "wrong")
	require.Error(t, err)
	assert.Equal(t, "login failed: Invalid credentials", err.Error())
}

func TestOpenAppliesGuards(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("", "open", "/victims")
	require.NoError(t, err)
	assert.Contains(t, out, "Location: /login?returnUrl=%2Fvictims")

	_, err = c.run("", "login", "-u", "daemon1", "-p", "daemon123")
	require.NoError(t, err)

	out, err = c.run("", "open", "/users")
	require.NoError(t, err)
	assert.Contains(t, out, "Location: /dashboard")
	assert.Contains(t, out, "Notice:   Access denied")
	assert.Contains(t, c.notices.String(), "Access denied")

	out, err = c.run("", "open", "/victims/Target Alpha")
	require.NoError(t, err)
	assert.Contains(t, out, "Page:     Victims")
}

func TestMenuHidesElevatedEntries(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("", "login", "-u", "daemon2", "-p", "daemon123")
	require.NoError(t, err)

	out, err := c.run("", "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "/victims")
	assert.NotContains(t, out, "/users")
	assert.NotContains(t, out, "/reports")
}

func TestResourceCommands(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("", "list", "victims")
	assert.ErrorIs(t, err, errNotLoggedIn)

	_, err = c.run("", "login", "-u", "daemon1", "-p", "daemon123")
	require.NoError(t, err)

	out, err := c.run("", "list", "attempts", "--daemon", "daemon2")
	require.NoError(t, err)
	assert.Contains(t, out, `"totalItems": 2`)

	out, err = c.run("", "get", "victims", "Target Alpha")
	require.NoError(t, err)
	assert.Contains(t, out, `"dangerLevel": 8`)

	out, err = c.run("", "create", "attempts", "--data", `{"victimName":"Target Beta","description":"Recon"}`)
	require.NoError(t, err)
	assert.Contains(t, out, `"daemonUsername": "daemon1"`)
	assert.Contains(t, out, `"state": "Pending"`)

	_, err = c.run("", "create", "victims", "--data", `{"name":"X","dangerLevel":42}`)
	assert.Error(t, err)

	_, err = c.run("", "create", "victims", "--data", `{"nickname":"X"}`)
	assert.ErrorContains(t, err, "invalid --data")

	_, err = c.run("", "list", "users")
	assert.ErrorContains(t, err, "Access denied")

	_, err = c.run("", "list", "spaceships")
	assert.ErrorContains(t, err, "unknown resource")
}

func TestAdminManagesUsers(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("", "login", "-u", "admin", "-p", "admin123")
	require.NoError(t, err)

	out, err := c.run("", "list", "users", "--limit", "2")
	require.NoError(t, err)
	assert.Contains(t, out, `"totalPages": 2`)

	out, err = c.run("", "delete", "reports", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted reports 1")

	// Mock collections live for one invocation, so the deleted report is back.
	out, err = c.run("", "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, `"totalVictims": 5`)
	assert.Contains(t, out, `"pendingReports": 3`)
}
