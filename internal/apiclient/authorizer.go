package apiclient

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/spec-kit/resistance-admin/internal/events"
	"github.com/spec-kit/resistance-admin/internal/observability"
)

// SessionSource is the part of the session store the authorizer depends on.
type SessionSource interface {
	CurrentToken() (string, bool)
	LogoutWithReason(ctx context.Context, reason string)
}

// AuthorizerConfig bundles the optional collaborators of an Authorizer.
type AuthorizerConfig struct {
	Next       http.RoundTripper
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// Authorizer attaches the session token to outgoing requests and ends the session when
// the backend answers 401. It never retries.
type Authorizer struct {
	session    SessionSource
	next       http.RoundTripper
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewAuthorizer wraps cfg.Next (http.DefaultTransport when nil).
func NewAuthorizer(session SessionSource, cfg AuthorizerConfig) *Authorizer {
	a := &Authorizer{
		session:    session,
		next:       cfg.Next,
		dispatcher: cfg.Dispatcher,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
	}
	if a.next == nil {
		a.next = http.DefaultTransport
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	return a
}

// RoundTrip implements http.RoundTripper. The caller's request is never modified; the
// token goes on a clone.
func (a *Authorizer) RoundTrip(req *http.Request) (*http.Response, error) {
	outbound := req
	if token, ok := a.session.CurrentToken(); ok {
		outbound = req.Clone(req.Context())
		outbound.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.next.RoundTrip(outbound)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		ctx := req.Context()
		a.metrics.RecordForcedLogout()
		a.logger.Warn("backend rejected session, logging out",
			zap.String("method", req.Method),
			zap.String("url", req.URL.Redacted()))
		a.session.LogoutWithReason(ctx, "unauthorized")
		if a.dispatcher != nil {
			event := events.New(events.EventForcedLogout, "", events.ForcedLogoutPayload{
				Method: req.Method,
				URL:    req.URL.Redacted(),
			})
			if err := a.dispatcher.Publish(ctx, event); err != nil {
				a.logger.Warn("event handler failed", zap.String("event", string(event.Type)), zap.Error(err))
			}
		}
	}
	return resp, nil
}
