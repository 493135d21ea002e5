package domain

import (
	"context"
	"net/mail"
)

// Email is a fully composed outbound message handed to a Mailer.
type Email struct {
	// From is the sender line shown to the recipient. Providers that require a
	// verified sender keep only the display name and use their own address.
	From    mail.Address
	ReplyTo string
	To      []string
	Subject string
	HTML    string
	Text    string
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ContactEmailData holds data for the contact notification email.
type ContactEmailData struct {
	ContactMessage
	Subject string
}
