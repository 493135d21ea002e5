package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/mail"
	"net/smtp"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/mailgun/mailgun-go/v4"

	"contactrelay/internal/domain"
)

// Supported mail providers.
const (
	ProviderSMTP    = "smtp"
	ProviderSES     = "ses"
	ProviderMailgun = "mailgun"
	ProviderNoop    = "noop"
)

const mailgunSendTimeout = 30 * time.Second

// SMTPConfig holds the outbound SMTP account. Username and Password are the
// account identifier and secret.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	Endpoint           string
	InsecureSkipVerify bool
}

// MailgunConfig holds configuration for the Mailgun API.
type MailgunConfig struct {
	Domain  string
	APIKey  string
	APIBase string
}

// MailerConfig holds configuration for creating a mailer.
type MailerConfig struct {
	Provider    string
	FromAddress string
	SMTP        SMTPConfig
	SES         SESConfig
	Mailgun     MailgunConfig
}

// NewMailer creates a mailer from config. Unknown providers fall back to a
// no-op mailer.
func NewMailer(config MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "mailer", "provider", config.Provider)

	switch config.Provider {
	case ProviderSMTP:
		if config.SMTP.Host == "" {
			return nil, fmt.Errorf("smtp host is required")
		}
		return &smtpMailer{
			host:     config.SMTP.Host,
			addr:     net.JoinHostPort(config.SMTP.Host, strconv.Itoa(config.SMTP.Port)),
			username: config.SMTP.Username,
			password: config.SMTP.Password,
			send:     smtp.SendMail,
			now:      time.Now,
			logger:   logger,
		}, nil
	case ProviderSES:
		sesConfig := config.SES
		if sesConfig.InsecureSkipVerify {
			logger.Warn("TLS certificate verification is disabled for SES. Use only in development.")
		}
		httpClient := &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: sesConfig.InsecureSkipVerify,
					MinVersion:         tls.VersionTLS12,
				},
			},
		}
		awsCfg := aws.Config{
			Region: sesConfig.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					sesConfig.AccessKeyID,
					sesConfig.SecretAccessKey,
					"",
				),
			),
			HTTPClient: httpClient,
		}
		client := ses.NewFromConfig(awsCfg, func(o *ses.Options) {
			if sesConfig.Endpoint != "" {
				o.BaseEndpoint = aws.String(sesConfig.Endpoint)
			}
		})
		return &sesMailer{
			client:      client,
			fromAddress: config.FromAddress,
			logger:      logger,
		}, nil
	case ProviderMailgun:
		client := mailgun.NewMailgun(config.Mailgun.Domain, config.Mailgun.APIKey)
		if config.Mailgun.APIBase != "" {
			client.SetAPIBase(config.Mailgun.APIBase)
		}
		return &mailgunMailer{
			client:      client,
			fromAddress: config.FromAddress,
			logger:      logger,
		}, nil
	case ProviderNoop:
		return &noopMailer{logger: logger}, nil
	default:
		logger.Warn("unknown email provider, using noop")
		return &noopMailer{logger: logger}, nil
	}
}

// verifiedSender keeps the visitor's display name but sends from an address
// the provider has verified.
func verifiedSender(from mail.Address, address string) string {
	return (&mail.Address{Name: from.Name, Address: address}).String()
}

type smtpMailer struct {
	host     string
	addr     string
	username string
	password string
	send     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	now      func() time.Time
	logger   *slog.Logger
}

func (s *smtpMailer) Send(ctx context.Context, e domain.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := buildMessage(e, s.now())
	if err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	// The account authenticates the session, so it is also the envelope sender.
	var auth smtp.Auth
	envelopeFrom := e.From.Address
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
		envelopeFrom = s.username
	}
	if err := s.send(s.addr, auth, envelopeFrom, e.To, msg); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	s.logger.InfoContext(ctx, "email sent via SMTP", "to", e.To, "subject", e.Subject)
	return nil
}

type sesMailer struct {
	client      *ses.Client
	fromAddress string
	logger      *slog.Logger
}

func (s *sesMailer) Send(ctx context.Context, e domain.Email) error {
	input := &ses.SendEmailInput{
		Source: aws.String(verifiedSender(e.From, s.fromAddress)),
		Destination: &types.Destination{
			ToAddresses: e.To,
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(e.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}
	if e.ReplyTo != "" {
		input.ReplyToAddresses = []string{e.ReplyTo}
	}
	if e.HTML != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(e.HTML),
			Charset: aws.String("UTF-8"),
		}
	}
	if e.Text != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(e.Text),
			Charset: aws.String("UTF-8"),
		}
	}
	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("ses: %w", err)
	}
	s.logger.InfoContext(ctx, "email sent via SES", "message_id", aws.ToString(result.MessageId))
	return nil
}

type mailgunMailer struct {
	client      *mailgun.MailgunImpl
	fromAddress string
	logger      *slog.Logger
}

func (m *mailgunMailer) Send(ctx context.Context, e domain.Email) error {
	message := m.client.NewMessage(verifiedSender(e.From, m.fromAddress), e.Subject, e.Text, e.To...)
	if e.HTML != "" {
		message.SetHtml(e.HTML)
	}
	if e.ReplyTo != "" {
		message.SetReplyTo(e.ReplyTo)
	}

	sendCtx, cancel := context.WithTimeout(ctx, mailgunSendTimeout)
	defer cancel()

	_, messageID, err := m.client.Send(sendCtx, message)
	if err != nil {
		return fmt.Errorf("mailgun: %w", err)
	}
	m.logger.InfoContext(ctx, "email sent via Mailgun", "message_id", messageID)
	return nil
}

type noopMailer struct {
	logger *slog.Logger
}

func (n *noopMailer) Send(ctx context.Context, e domain.Email) error {
	n.logger.InfoContext(ctx, "email would be sent (noop)", "to", e.To, "subject", e.Subject, "from", e.From.String())
	return nil
}
