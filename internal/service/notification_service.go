package service

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/spec-kit/resistance-admin/internal/events"
)

// NotificationService turns session and access events into log lines and, when an
// output is configured, into notices for the operator.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	out        io.Writer
}

// NewNotificationService creates the service. out may be nil.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, out io.Writer) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		out:        out,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventLoggedIn, n.handleLoggedIn)
	n.dispatcher.Subscribe(events.EventLoginFailed, n.handleLoginFailed)
	n.dispatcher.Subscribe(events.EventLoggedOut, n.handleLoggedOut)
	n.dispatcher.Subscribe(events.EventForcedLogout, n.handleForcedLogout)
	n.dispatcher.Subscribe(events.EventAccessDenied, n.handleAccessDenied)
}

func (n *NotificationService) handleLoggedIn(_ context.Context, event events.Event) error {
	n.logger.Info("LoggedIn", zap.String("actor", event.Actor), zap.String("event_id", event.ID))
	return nil
}

func (n *NotificationService) handleLoginFailed(_ context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.LoginFailedPayload)
	n.logger.Info("LoginFailed", zap.String("identifier", payload.Identifier), zap.String("message", payload.Message))
	return nil
}

func (n *NotificationService) handleLoggedOut(_ context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.LogoutPayload)
	n.logger.Info("LoggedOut", zap.String("actor", event.Actor), zap.String("reason", payload.Reason))
	return nil
}

func (n *NotificationService) handleForcedLogout(_ context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.ForcedLogoutPayload)
	n.logger.Warn("ForcedLogout", zap.String("method", payload.Method), zap.String("url", payload.URL))
	return n.notify("Your session has expired. Please log in again.")
}

func (n *NotificationService) handleAccessDenied(_ context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.AccessDeniedPayload)
	n.logger.Info("AccessDenied",
		zap.String("path", payload.Path),
		zap.String("redirect_to", payload.RedirectTo))
	return n.notify(payload.Notice)
}

func (n *NotificationService) notify(message string) error {
	if n.out == nil || message == "" {
		return nil
	}
	_, err := fmt.Fprintln(n.out, message)
	return err
}
