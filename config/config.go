package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the relay server
type Config struct {
	Environment     string        `env:"GO_ENV" envDefault:"development"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	Port            string        `env:"PORT" envDefault:"8080"`
	RelayPath       string        `env:"RELAY_PATH" envDefault:"/.netlify/functions/sendEmail"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"45s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Contact ContactConfig
	Mail    MailConfig
}

// ContactConfig controls where relayed contact messages go.
type ContactConfig struct {
	Recipient   string `env:"CONTACT_RECIPIENT"`
	Subject     string `env:"CONTACT_SUBJECT" envDefault:"New Message from Contact Form"`
	StripMarkup bool   `env:"RELAY_STRIP_MARKUP" envDefault:"false"`
}

// MailConfig selects and configures the outbound mail account.
type MailConfig struct {
	Provider    string `env:"MAIL_PROVIDER" envDefault:"smtp"`
	FromAddress string `env:"MAIL_FROM_ADDRESS"`

	// SMTP account (Gmail by default). EMAIL_USER and EMAIL_PASS are the
	// account identifier and secret.
	SMTPHost  string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort  int    `env:"SMTP_PORT" envDefault:"587"`
	EmailUser string `env:"EMAIL_USER"`
	EmailPass string `env:"EMAIL_PASS"`

	SESRegion             string `env:"SES_REGION" envDefault:"us-east-1"`
	SESAccessKeyID        string `env:"SES_ACCESS_KEY_ID"`
	SESSecretAccessKey    string `env:"SES_SECRET_ACCESS_KEY"`
	SESEndpoint           string `env:"SES_ENDPOINT"`
	SESInsecureSkipVerify bool   `env:"SES_INSECURE_SKIP_VERIFY" envDefault:"false"`

	MailgunDomain  string `env:"MAILGUN_DOMAIN"`
	MailgunAPIKey  string `env:"MAILGUN_API_KEY"`
	MailgunAPIBase string `env:"MAILGUN_API_BASE"`
}

// ClientConfig holds configuration for the terminal contact form.
type ClientConfig struct {
	Environment string        `env:"GO_ENV" envDefault:"development"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"warn"`
	RelayURL    string        `env:"CONTACT_RELAY_URL" envDefault:"http://localhost:8080/.netlify/functions/sendEmail"`
	Timeout     time.Duration `env:"CONTACT_TIMEOUT" envDefault:"15s"`
}

// Load loads relay configuration from environment variables.
// It attempts to load from .env file if not in production.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadClient loads the terminal contact form configuration.
func LoadClient() (*ClientConfig, error) {
	loadDotEnv()

	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.RelayURL == "" {
		return nil, errors.New("CONTACT_RELAY_URL is required")
	}
	return cfg, nil
}

// loadDotEnv loads .env outside production. A missing file is not an error:
// production relies on the process environment.
func loadDotEnv() {
	if os.Getenv("GO_ENV") == "production" {
		return
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: .env file couldn't be loaded: %v", err)
	}
}

// Validate checks that the selected mail provider has what it needs.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.RelayPath, "/") {
		return fmt.Errorf("RELAY_PATH must start with /")
	}
	m := c.Mail
	if m.Provider == "noop" {
		return nil
	}
	if c.Contact.Recipient == "" {
		return fmt.Errorf("CONTACT_RECIPIENT is required")
	}
	switch m.Provider {
	case "smtp":
		if m.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST is required")
		}
		if m.EmailUser == "" {
			return fmt.Errorf("EMAIL_USER is required")
		}
		if m.EmailPass == "" {
			return fmt.Errorf("EMAIL_PASS is required")
		}
	case "ses":
		if m.SESAccessKeyID == "" {
			return fmt.Errorf("SES_ACCESS_KEY_ID is required")
		}
		if m.SESSecretAccessKey == "" {
			return fmt.Errorf("SES_SECRET_ACCESS_KEY is required")
		}
		if m.FromAddress == "" {
			return fmt.Errorf("MAIL_FROM_ADDRESS is required")
		}
	case "mailgun":
		if m.MailgunDomain == "" {
			return fmt.Errorf("MAILGUN_DOMAIN is required")
		}
		if m.MailgunAPIKey == "" {
			return fmt.Errorf("MAILGUN_API_KEY is required")
		}
		if m.FromAddress == "" {
			return fmt.Errorf("MAIL_FROM_ADDRESS is required")
		}
	default:
		return fmt.Errorf("unknown MAIL_PROVIDER %q", m.Provider)
	}
	return nil
}
