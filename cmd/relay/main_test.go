package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"contactrelay/config"
	"contactrelay/internal/adapters/email"
)

func TestMailerConfig(t *testing.T) {
	got := mailerConfig(config.MailConfig{
		Provider:       "smtp",
		FromAddress:    "noreply@example.com",
		SMTPHost:       "smtp.gmail.com",
		SMTPPort:       587,
		EmailUser:      "relay@gmail.com",
		EmailPass:      "app-password",
		SESRegion:      "eu-west-1",
		MailgunDomain:  "mg.example.com",
		MailgunAPIKey:  "key",
		MailgunAPIBase: "https://api.eu.mailgun.net/v3",
	})

	assert.Equal(t, email.MailerConfig{
		Provider:    "smtp",
		FromAddress: "noreply@example.com",
		SMTP: email.SMTPConfig{
			Host:     "smtp.gmail.com",
			Port:     587,
			Username: "relay@gmail.com",
			Password: "app-password",
		},
		SES: email.SESConfig{Region: "eu-west-1"},
		Mailgun: email.MailgunConfig{
			Domain:  "mg.example.com",
			APIKey:  "key",
			APIBase: "https://api.eu.mailgun.net/v3",
		},
	}, got)
}
