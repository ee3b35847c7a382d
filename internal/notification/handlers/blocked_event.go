// Package handlers contains the notification consumers. Each handler owns its
// own failure domain: errors are reported to the bus, logged, and dropped.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"eventsexpress/internal/domain"
)

// BlockedEventHandler emails every visitor of a blocked event. A failure for
// one recipient does not stop delivery to the rest.
type BlockedEventHandler struct {
	users   domain.UserRepository
	emails  domain.EmailService
	baseURL string
	logger  *slog.Logger
}

func NewBlockedEventHandler(users domain.UserRepository, emails domain.EmailService, baseURL string, logger *slog.Logger) *BlockedEventHandler {
	return &BlockedEventHandler{users: users, emails: emails, baseURL: baseURL, logger: logger}
}

func (h *BlockedEventHandler) Handle(ctx context.Context, msg domain.Message) error {
	m, ok := msg.(domain.BlockedEventMessage)
	if !ok {
		return fmt.Errorf("unexpected message type %s", msg.MessageType())
	}

	var errs []error
	for _, userID := range m.UserIDs {
		user, err := h.users.GetByID(ctx, userID)
		if err != nil {
			errs = append(errs, fmt.Errorf("get user %s: %w", userID, err))
			continue
		}
		data := &domain.EventBlockedEmailData{
			Email:      user.Email,
			EventTitle: m.Title,
			EventLink:  fmt.Sprintf("%s/event/%s", h.baseURL, m.EventID),
		}
		if err := h.emails.SendEventBlocked(ctx, data); err != nil {
			errs = append(errs, fmt.Errorf("notify %s: %w", user.Email, err))
			continue
		}
		h.logger.Info("blocked event notification sent", "event_id", m.EventID, "user_id", userID)
	}
	return errors.Join(errs...)
}
