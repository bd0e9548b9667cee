// Package app assembles the console from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/spec-kit/resistance-admin/internal/apiclient"
	"github.com/spec-kit/resistance-admin/internal/authbackend"
	"github.com/spec-kit/resistance-admin/internal/config"
	"github.com/spec-kit/resistance-admin/internal/events"
	"github.com/spec-kit/resistance-admin/internal/observability"
	"github.com/spec-kit/resistance-admin/internal/persistence"
	"github.com/spec-kit/resistance-admin/internal/resources"
	"github.com/spec-kit/resistance-admin/internal/router"
	"github.com/spec-kit/resistance-admin/internal/service"
	"github.com/spec-kit/resistance-admin/internal/session"
)

// Options overrides parts of the console assembly.
type Options struct {
	Logger *zap.Logger
	// Notices receives user-visible notices such as access denials.
	Notices io.Writer
	// Slot replaces the configured token storage.
	Slot persistence.TokenSlot
	// Transport is the base HTTP transport for both API clients.
	Transport http.RoundTripper
}

// Console is a fully wired session core with its resource clients.
type Console struct {
	Config     config.Config
	Logger     *zap.Logger
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Session    *session.Store
	Navigator  *router.Navigator
	Resources  *resources.Catalog
	Dashboard  *service.DashboardService

	slot     persistence.TokenSlot
	accounts *Accounts
}

// NewConsole wires the console and restores any persisted session before returning,
// so guards may run immediately.
func NewConsole(ctx context.Context, cfg config.Config, opts Options) (*Console, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	slot := opts.Slot
	if slot == nil {
		var err error
		slot, err = persistence.NewTokenSlot(cfg, session.TokenKey, logger)
		if err != nil {
			return nil, fmt.Errorf("open token slot: %w", err)
		}
	}

	c := &Console{
		Config:     cfg,
		Logger:     logger,
		Dispatcher: events.NewInMemoryDispatcher(),
		Metrics:    observability.NewMetrics(),
		slot:       slot,
	}
	service.NewNotificationService(c.Dispatcher, logger, opts.Notices).RegisterHandlers()

	mode := resources.ModeFor(cfg)
	if mode == resources.ModeMock {
		accounts, err := OpenAccounts(ctx, cfg, logger)
		if err != nil {
			_ = slot.Close()
			return nil, err
		}
		c.accounts = accounts
	}

	loginClient := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout(), opts.Transport)
	backendDeps := authbackend.Deps{Client: loginClient, Logger: logger}
	if c.accounts != nil {
		backendDeps.Accounts = c.accounts.Repo
	}
	backend, err := authbackend.New(ctx, cfg, backendDeps)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Session = session.NewStore(session.Deps{
		Slot:       slot,
		Backend:    backend,
		Dispatcher: c.Dispatcher,
		Logger:     logger,
	})
	c.Navigator = router.NewNavigator(c.Session, router.NavigatorConfig{
		Dispatcher: c.Dispatcher,
		Metrics:    c.Metrics,
		Logger:     logger,
	})

	authorizer := apiclient.NewAuthorizer(c.Session, apiclient.AuthorizerConfig{
		Next:       opts.Transport,
		Dispatcher: c.Dispatcher,
		Metrics:    c.Metrics,
		Logger:     logger,
	})
	resourceOpts := resources.Options{
		Client:  apiclient.New(cfg.API.BaseURL, cfg.API.Timeout(), authorizer),
		Latency: cfg.API.MockLatency(),
		Actor:   c.Actor,
	}
	if c.accounts != nil {
		resourceOpts.Accounts = resources.NewAccountDirectory(c.accounts.Repo, c.accounts.Hash)
	}
	c.Resources = resources.New(mode, resourceOpts)
	c.Dashboard = service.NewDashboardService(c.Resources, c.Session)

	if err := c.Session.Restore(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	logger.Debug("console ready", zap.String("mode", string(mode)), zap.String("storage", cfg.Session.Storage))
	return c, nil
}

// Actor names the user acting in ctx: an explicit WithActor value, else the session
// identity.
func (c *Console) Actor(ctx context.Context) string {
	if username := resources.ActorFromContext(ctx); username != "" {
		return username
	}
	if identity, ok := c.Session.CurrentIdentity(); ok {
		return identity.Identifier
	}
	return ""
}

// Close releases the token slot and any database pool.
func (c *Console) Close() error {
	var errs []error
	if c.slot != nil {
		errs = append(errs, c.slot.Close())
	}
	if c.accounts != nil {
		c.accounts.Close()
	}
	return errors.Join(errs...)
}
