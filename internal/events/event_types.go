package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoggedIn     EventType = "session.logged_in"
	EventLoginFailed  EventType = "session.login_failed"
	EventLoggedOut    EventType = "session.logged_out"
	EventRestored     EventType = "session.restored"
	EventForcedLogout EventType = "session.forced_logout"
	EventAccessDenied EventType = "access.denied"
)

// Event represents something that happened to the session or to a navigation attempt.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     string      `json:"actor,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, actor string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// AccessDeniedPayload is published when a guard refuses a navigation.
type AccessDeniedPayload struct {
	Path       string `json:"path"`
	RedirectTo string `json:"redirect_to"`
	Notice     string `json:"notice"`
}

// LogoutPayload records why a session ended.
type LogoutPayload struct {
	Reason string `json:"reason"`
}

// LoginFailedPayload records a rejected login.
type LoginFailedPayload struct {
	Identifier string `json:"identifier"`
	Message    string `json:"message"`
}

// ForcedLogoutPayload records the request that was rejected with 401.
type ForcedLogoutPayload struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}
