package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"eventsexpress/internal/domain"
)

// RegisterVerificationHandler mints a verification token for a freshly
// registered user, caches it, and emails the confirmation link. The cache
// write happens before the send so a delivered link is always redeemable.
type RegisterVerificationHandler struct {
	cache   domain.VerificationCache
	emails  domain.EmailService
	baseURL string
	logger  *slog.Logger
}

func NewRegisterVerificationHandler(cache domain.VerificationCache, emails domain.EmailService, baseURL string, logger *slog.Logger) *RegisterVerificationHandler {
	return &RegisterVerificationHandler{cache: cache, emails: emails, baseURL: baseURL, logger: logger}
}

func (h *RegisterVerificationHandler) Handle(ctx context.Context, msg domain.Message) error {
	m, ok := msg.(domain.RegisterVerificationMessage)
	if !ok {
		return fmt.Errorf("unexpected message type %s", msg.MessageType())
	}

	token := uuid.NewString()
	if err := h.cache.SetToken(ctx, m.UserID, token); err != nil {
		return fmt.Errorf("cache verification token: %w", err)
	}

	data := &domain.RegisterVerificationEmailData{
		Email:      m.Email,
		Name:       m.Name,
		ConfirmURL: fmt.Sprintf("%s/auth/confirm/%s/%s", h.baseURL, m.UserID, token),
	}
	if err := h.emails.SendRegisterVerification(ctx, data); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	h.logger.Info("verification email sent", "user_id", m.UserID)
	return nil
}
