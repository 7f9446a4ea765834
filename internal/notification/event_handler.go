package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/attendance-management/internal/core/events"
	"github.com/frahmantamala/attendance-management/internal/leave"
)

// EventHandler turns domain events into outbound email.
type EventHandler struct {
	dispatcher *Dispatcher
	logger     *slog.Logger
}

func NewEventHandler(dispatcher *Dispatcher, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeUserRegistered, h.HandleUserRegistered)
	eventBus.Subscribe(events.EventTypeLeaveDecided, h.HandleLeaveDecided)
}

func (h *EventHandler) HandleUserRegistered(ctx context.Context, event events.Event) error {
	registered, ok := event.(*events.UserRegisteredEvent)
	if !ok {
		h.logger.Error("invalid event type for user registered handler", "event_type", event.EventType())
		return fmt.Errorf("expected UserRegisteredEvent, got %T", event)
	}

	h.logger.Info("sending verification email",
		"user_id", registered.UserID,
		"event_id", registered.EventID())

	h.dispatcher.Enqueue(Message{
		To:      registered.Email,
		Subject: "Verify your email address",
		Body: fmt.Sprintf(
			"Hi %s,\n\nWelcome aboard. Please confirm your email address by opening the link below:\n\n%s\n\nThe link expires soon; register again if it no longer works.\n",
			registered.Name,
			registered.VerificationURL,
		),
	})

	return nil
}

func (h *EventHandler) HandleLeaveDecided(ctx context.Context, event events.Event) error {
	decided, ok := event.(*events.LeaveDecidedEvent)
	if !ok {
		h.logger.Error("invalid event type for leave decided handler", "event_type", event.EventType())
		return fmt.Errorf("expected LeaveDecidedEvent, got %T", event)
	}

	verdict := "approved"
	if decided.Status == leave.StatusDenied {
		verdict = "denied"
	}

	h.logger.Info("sending leave decision email",
		"leave_request_id", decided.LeaveRequestID,
		"user_id", decided.UserID,
		"status", decided.Status,
		"event_id", decided.EventID())

	h.dispatcher.Enqueue(Message{
		To:      decided.Email,
		Subject: fmt.Sprintf("Your leave request has been %s", verdict),
		Body: fmt.Sprintf(
			"Your %s request from %s to %s has been %s.\n",
			decided.LeaveType,
			decided.StartDate,
			decided.EndDate,
			verdict,
		),
	})

	return nil
}
