package router

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/resistance-admin/internal/events"
	"github.com/spec-kit/resistance-admin/internal/observability"
)

// maxRedirects bounds a redirect chain; login and the landing page settle in one hop.
const maxRedirects = 3

// Result describes a completed navigation.
type Result struct {
	Requested  string
	Location   string
	Route      Route
	Redirected bool
	Notice     string
}

// NavigatorConfig bundles the optional collaborators of a Navigator.
type NavigatorConfig struct {
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// Navigator tracks the console's current location and applies the route guards to
// every move. It returns to login whenever the session logs out.
type Navigator struct {
	session    Session
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger

	mu       sync.Mutex
	location string
}

// NewNavigator builds a navigator positioned at the login page and subscribes it to
// logout events.
func NewNavigator(session Session, cfg NavigatorConfig) *Navigator {
	n := &Navigator{
		session:    session,
		dispatcher: cfg.Dispatcher,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
		location:   LoginPath,
	}
	if n.logger == nil {
		n.logger = zap.NewNop()
	}
	if n.dispatcher != nil {
		n.dispatcher.Subscribe(events.EventLoggedOut, n.onLoggedOut)
	}
	return n
}

// Location returns the current path.
func (n *Navigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

// Navigate moves to target unless a guard refuses, in which case the refusal's
// redirect is followed instead. Denial notices are published as access.denied events.
func (n *Navigator) Navigate(ctx context.Context, target string) Result {
	result := Result{Requested: target}
	path := target

	for hop := 0; ; hop++ {
		route := Match(path)
		if route.RedirectTo != "" && hop < maxRedirects {
			path = route.RedirectTo
			result.Redirected = true
			continue
		}

		decision, guard := Evaluate(n.session, path, route.Guards...)
		if guard != nil {
			n.metrics.RecordGuardDecision(guard.Name(), "redirect")
		} else {
			for _, g := range route.Guards {
				n.metrics.RecordGuardDecision(g.Name(), "allow")
			}
		}
		if !decision.Allowed && hop >= maxRedirects {
			n.logger.Warn("redirect chain too long", zap.String("requested", target), zap.String("at", path))
			route, path = Match(LoginPath), LoginPath
			decision = Allow()
		}
		if decision.Allowed {
			result.Route = route
			if route.Path == NotFoundPath && path != NotFoundPath {
				path = NotFoundPath
			}
			result.Location = path
			break
		}

		n.logger.Debug("navigation refused",
			zap.String("guard", guard.Name()),
			zap.String("target", path),
			zap.String("redirect_to", decision.RedirectTo))
		if decision.Notice != "" {
			result.Notice = decision.Notice
			n.publish(ctx, events.New(events.EventAccessDenied, "", events.AccessDeniedPayload{
				Path:       path,
				RedirectTo: decision.RedirectTo,
				Notice:     decision.Notice,
			}))
		}
		path = decision.RedirectTo
		result.Redirected = true
	}

	n.mu.Lock()
	n.location = result.Location
	n.mu.Unlock()
	return result
}

func (n *Navigator) onLoggedOut(context.Context, events.Event) error {
	n.mu.Lock()
	n.location = LoginPath
	n.mu.Unlock()
	return nil
}

func (n *Navigator) publish(ctx context.Context, event events.Event) {
	if n.dispatcher == nil {
		return
	}
	if err := n.dispatcher.Publish(ctx, event); err != nil {
		n.logger.Warn("event handler failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}
