package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventBlockedEmailData holds data for the "your event was blocked" email sent
// to each visitor of a blocked event.
type EventBlockedEmailData struct {
	Email      string
	EventTitle string
	EventLink  string
}

// RegisterVerificationEmailData holds data for the registration confirmation email.
type RegisterVerificationEmailData struct {
	Email      string
	Name       string
	ConfirmURL string
}

// EventCreatedEmailData holds data for the new-event announcement sent to
// users subscribed to one of the event's categories.
type EventCreatedEmailData struct {
	Email      string
	EventTitle string
	EventLink  string
}

// EmailService defines the contract for sending domain-level emails. It is
// called only from notification handlers, never from lifecycle operations.
type EmailService interface {
	SendEventBlocked(ctx context.Context, data *EventBlockedEmailData) error
	SendRegisterVerification(ctx context.Context, data *RegisterVerificationEmailData) error
	SendEventCreated(ctx context.Context, data *EventCreatedEmailData) error
}
