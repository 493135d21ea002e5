package services

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/mail"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"contactrelay/internal/domain"
)

// DefaultContactSubject is the subject line of relayed contact messages.
const DefaultContactSubject = "New Message from Contact Form"

const contactTemplate = "contact"

// RelayConfig configures where contact messages are delivered.
type RelayConfig struct {
	Recipient   string
	Subject     string
	StripMarkup bool
}

type relayService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	config   RelayConfig
	logger   *slog.Logger
}

// NewRelayService returns a RelayService that renders the "contact" template
// and sends the result to the configured recipient.
func NewRelayService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, config RelayConfig, logger *slog.Logger) domain.RelayService {
	if config.Subject == "" {
		config.Subject = DefaultContactSubject
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &relayService{mailer: mailer, renderer: renderer, config: config, logger: logger}
}

// Relay composes the notification email for msg and sends it. Mailer errors
// are returned unwrapped; they already name the provider.
func (s *relayService) Relay(ctx context.Context, msg domain.ContactMessage) error {
	if s.config.Recipient == "" {
		return fmt.Errorf("contact recipient is not configured")
	}
	if s.config.StripMarkup {
		msg = stripMarkup(msg)
	}
	data := &domain.ContactEmailData{ContactMessage: msg, Subject: s.config.Subject}
	subject, htmlBody, textBody, err := s.renderer.Render(contactTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render contact template: %w", err)
	}
	email := domain.Email{
		From:    mail.Address{Name: msg.Name, Address: msg.Email},
		ReplyTo: msg.Email,
		To:      []string{s.config.Recipient},
		Subject: subject,
		HTML:    htmlBody,
		Text:    textBody,
	}
	if err := s.mailer.Send(ctx, email); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "contact message relayed", "recipient", s.config.Recipient)
	return nil
}

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

func stripMarkup(msg domain.ContactMessage) domain.ContactMessage {
	markupPolicyOnce.Do(func() {
		markupPolicy = bluemonday.StrictPolicy()
	})
	clean := func(s string) string {
		// StrictPolicy escapes what it keeps; the templates escape again.
		return strings.TrimSpace(html.UnescapeString(markupPolicy.Sanitize(s)))
	}
	return domain.ContactMessage{
		Name:    clean(msg.Name),
		Email:   clean(msg.Email),
		Phone:   clean(msg.Phone),
		Message: clean(msg.Message),
	}
}
