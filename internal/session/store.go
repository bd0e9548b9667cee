package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/resistance-admin/internal/domain"
	"github.com/spec-kit/resistance-admin/internal/events"
)

// TokenKey is the fixed slot name under which the session token is persisted.
const TokenKey = "auth_token"

// TokenSlot is the persistent single-value storage holding the raw session token.
// Load returns "" when the slot is empty.
type TokenSlot interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// AuthBackend exchanges credentials for a session token.
type AuthBackend interface {
	Login(ctx context.Context, creds domain.Credentials) (string, error)
}

// Identity is the read-only projection of the current token's claims.
type Identity struct {
	Identifier string      `json:"identifier"`
	Role       domain.Role `json:"role"`
	ExpiresAt  *time.Time  `json:"expiresAt,omitempty"`
}

// Deps bundles the collaborators of a Store.
type Deps struct {
	Slot       TokenSlot
	Backend    AuthBackend
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Now        func() time.Time
}

// Store owns the console session. Restore must run once before any guard evaluates.
// The cached token, claims and identity always mirror the slot after an operation
// completes.
type Store struct {
	slot       TokenSlot
	backend    AuthBackend
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time

	mu       sync.RWMutex
	token    string
	claims   Claims
	identity *Identity
}

// NewStore builds a store. The session starts empty until Restore or Login.
func NewStore(deps Deps) *Store {
	s := &Store{
		slot:       deps.Slot,
		backend:    deps.Backend,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        deps.Now,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Restore loads a previously persisted token. Tokens that do not decode or are expired
// are removed from the slot.
func (s *Store) Restore(ctx context.Context) error {
	s.mu.Lock()
	token, err := s.slot.Load(ctx)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("load session token: %w", err)
	}
	if token == "" {
		s.resetLocked()
		s.mu.Unlock()
		return nil
	}

	claims, ok := Decode(token)
	if !ok || !claims.ValidAt(s.now()) {
		s.resetLocked()
		err := s.slot.Clear(ctx)
		s.mu.Unlock()
		if err != nil {
			return fmt.Errorf("clear stale session token: %w", err)
		}
		s.logger.Info("discarded stored session token", zap.Bool("decoded", ok))
		return nil
	}

	s.setLocked(token, claims)
	identifier := s.identity.Identifier
	s.mu.Unlock()

	s.logger.Info("session restored", zap.String("identifier", identifier))
	s.publish(ctx, events.New(events.EventRestored, identifier, nil))
	return nil
}

// Login exchanges creds for a token and makes it the current session. On failure the
// previous session, if any, is left as it was.
func (s *Store) Login(ctx context.Context, creds domain.Credentials) (*Identity, error) {
	token, err := s.backend.Login(ctx, creds)
	if err != nil {
		failure := asAuthFailure(err)
		s.logger.Info("login rejected", zap.String("identifier", creds.Identifier), zap.String("reason", failure.Message))
		s.publish(ctx, events.New(events.EventLoginFailed, creds.Identifier, events.LoginFailedPayload{
			Identifier: creds.Identifier,
			Message:    failure.Message,
		}))
		return nil, failure
	}

	claims, ok := Decode(token)
	if !ok {
		return nil, &AuthFailure{Message: "authority issued a token that cannot be decoded"}
	}
	if !claims.ValidAt(s.now()) {
		return nil, &AuthFailure{Message: "authority issued an expired token"}
	}

	s.mu.Lock()
	if err := s.slot.Save(ctx, token); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("persist session token: %w", err)
	}
	s.setLocked(token, claims)
	identity := *s.identity
	s.mu.Unlock()

	s.logger.Info("logged in", zap.String("identifier", identity.Identifier), zap.String("role", string(identity.Role)))
	s.publish(ctx, events.New(events.EventLoggedIn, identity.Identifier, nil))
	return &identity, nil
}

// Logout ends the session and sends the console back to the login surface. Calling it
// without a session is harmless and still publishes the logout.
func (s *Store) Logout(ctx context.Context) {
	s.LogoutWithReason(ctx, "user")
}

// LogoutWithReason is Logout with the reason recorded on the published event.
func (s *Store) LogoutWithReason(ctx context.Context, reason string) {
	s.mu.Lock()
	identifier := ""
	if s.identity != nil {
		identifier = s.identity.Identifier
	}
	err := s.slot.Clear(ctx)
	s.resetLocked()
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("failed to clear session token", zap.Error(err))
	}
	s.logger.Info("logged out", zap.String("identifier", identifier), zap.String("reason", reason))
	s.publish(ctx, events.New(events.EventLoggedOut, identifier, events.LogoutPayload{Reason: reason}))
}

// CurrentToken returns the raw session token.
func (s *Store) CurrentToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// CurrentIdentity returns a copy of the cached identity.
func (s *Store) CurrentIdentity() (*Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil, false
	}
	identity := *s.identity
	return &identity, true
}

func (s *Store) setLocked(token string, claims Claims) {
	identity := &Identity{
		Identifier: claims.Identifier(),
		Role:       claims.Role(),
	}
	if exp, ok := claims.ExpiresAt(); ok {
		identity.ExpiresAt = &exp
	}
	s.token = token
	s.claims = claims
	s.identity = identity
}

func (s *Store) resetLocked() {
	s.token = ""
	s.claims = nil
	s.identity = nil
}

func (s *Store) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}
