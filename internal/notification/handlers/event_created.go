package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"eventsexpress/internal/domain"
)

// EventCreatedHandler announces a new event to every user subscribed to one of
// its categories.
type EventCreatedHandler struct {
	users   domain.UserRepository
	emails  domain.EmailService
	baseURL string
	logger  *slog.Logger
}

func NewEventCreatedHandler(users domain.UserRepository, emails domain.EmailService, baseURL string, logger *slog.Logger) *EventCreatedHandler {
	return &EventCreatedHandler{users: users, emails: emails, baseURL: baseURL, logger: logger}
}

func (h *EventCreatedHandler) Handle(ctx context.Context, msg domain.Message) error {
	m, ok := msg.(domain.EventCreatedMessage)
	if !ok {
		return fmt.Errorf("unexpected message type %s", msg.MessageType())
	}
	if len(m.CategoryIDs) == 0 {
		return nil
	}

	subscribers, err := h.users.ListByCategoryIDs(ctx, m.CategoryIDs)
	if err != nil {
		return fmt.Errorf("list category subscribers: %w", err)
	}

	var errs []error
	for _, user := range subscribers {
		if user.ID == m.OwnerID {
			continue
		}
		data := &domain.EventCreatedEmailData{
			Email:      user.Email,
			EventTitle: m.Title,
			EventLink:  fmt.Sprintf("%s/event/%s", h.baseURL, m.EventID),
		}
		if err := h.emails.SendEventCreated(ctx, data); err != nil {
			errs = append(errs, fmt.Errorf("notify %s: %w", user.Email, err))
		}
	}
	if len(errs) == 0 {
		h.logger.Info("event announcement sent", "event_id", m.EventID, "recipients", len(subscribers))
	}
	return errors.Join(errs...)
}
