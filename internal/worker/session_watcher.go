package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// WatchedSession is the part of the session store the watcher needs.
type WatchedSession interface {
	CurrentToken() (string, bool)
	IsAuthenticated() bool
	LogoutWithReason(ctx context.Context, reason string)
}

// SessionWatcher ends sessions whose token expired while the console was idle, so the
// logout notice and the move to the login page happen without waiting for a 401.
type SessionWatcher struct {
	session  WatchedSession
	interval time.Duration
	logger   *zap.Logger
}

// NewSessionWatcher builds a watcher polling every interval (one minute when unset).
func NewSessionWatcher(session WatchedSession, interval time.Duration, logger *zap.Logger) *SessionWatcher {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionWatcher{session: session, interval: interval, logger: logger}
}

// Check logs out a held but no longer valid token and reports whether it did.
func (w *SessionWatcher) Check(ctx context.Context) bool {
	if _, held := w.session.CurrentToken(); !held || w.session.IsAuthenticated() {
		return false
	}
	w.logger.Info("session token expired")
	w.session.LogoutWithReason(ctx, "expired")
	return true
}

// Run polls until ctx is cancelled.
func (w *SessionWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

// Start runs the watcher in the background. The returned channel closes once it stops.
func (w *SessionWatcher) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()
	return done
}
