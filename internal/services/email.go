package services

import (
	"context"
	"fmt"
	"log"

	"eventsexpress/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendEventBlocked sends the "your event was blocked" email using the "event_blocked" template.
func (s *emailService) SendEventBlocked(ctx context.Context, data *domain.EventBlockedEmailData) error {
	if data == nil {
		return fmt.Errorf("event blocked data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("event_blocked", data)
	if err != nil {
		return fmt.Errorf("failed to render event_blocked template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send event blocked email: %w", err)
	}
	log.Printf("[EMAIL] Event blocked notice sent to %s", data.Email)
	return nil
}

// SendRegisterVerification sends the email confirmation link using the "register_verification" template.
func (s *emailService) SendRegisterVerification(ctx context.Context, data *domain.RegisterVerificationEmailData) error {
	if data == nil {
		return fmt.Errorf("register verification data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("register_verification", data)
	if err != nil {
		return fmt.Errorf("failed to render register_verification template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	log.Printf("[EMAIL] Verification email sent to %s", data.Email)
	return nil
}

// SendEventCreated sends the new-event announcement using the "event_created" template.
func (s *emailService) SendEventCreated(ctx context.Context, data *domain.EventCreatedEmailData) error {
	if data == nil {
		return fmt.Errorf("event created data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("event_created", data)
	if err != nil {
		return fmt.Errorf("failed to render event_created template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send event created email: %w", err)
	}
	log.Printf("[EMAIL] Event announcement sent to %s", data.Email)
	return nil
}
