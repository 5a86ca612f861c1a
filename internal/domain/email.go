package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with
// the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// CancellationEmailData holds data for the event-cancellation notice sent
// to attendees removed by a deletion.
type CancellationEmailData struct {
	Email     string
	FullName  string
	EventName string
	EventDate string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendEventCancellation(ctx context.Context, data *CancellationEmailData) error
}
