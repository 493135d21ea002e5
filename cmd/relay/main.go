// Command relay serves the contact form email relay endpoint.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"contactrelay/config"
	"contactrelay/internal/adapters/email"
	delivery "contactrelay/internal/delivery/http"
	"contactrelay/internal/delivery/http/controllers"
	"contactrelay/internal/services"
)

// @title			Contact Relay API
// @version		1.0
// @description	Relays landing page contact form submissions to the site owner by email.
// @BasePath		/
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	mailer, err := email.NewMailer(mailerConfig(cfg.Mail), logger)
	if err != nil {
		logger.Error("failed to create mailer", "provider", cfg.Mail.Provider, "err", err)
		os.Exit(1)
	}
	relayService := services.NewRelayService(mailer, email.NewTemplateRenderer(), services.RelayConfig{
		Recipient:   cfg.Contact.Recipient,
		Subject:     cfg.Contact.Subject,
		StripMarkup: cfg.Contact.StripMarkup,
	}, logger)
	relayController := controllers.NewRelayController(logger, relayService)

	handler := delivery.NewHandler(delivery.RouterConfig{
		RelayPath:      cfg.RelayPath,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	}, relayController)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	logger.Info("relay listening", "addr", server.Addr, "path", cfg.RelayPath, "provider", cfg.Mail.Provider)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errChan:
		logger.Error("listen failed", "err", err)
		os.Exit(1)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}

func mailerConfig(m config.MailConfig) email.MailerConfig {
	return email.MailerConfig{
		Provider:    m.Provider,
		FromAddress: m.FromAddress,
		SMTP: email.SMTPConfig{
			Host:     m.SMTPHost,
			Port:     m.SMTPPort,
			Username: m.EmailUser,
			Password: m.EmailPass,
		},
		SES: email.SESConfig{
			Region:             m.SESRegion,
			AccessKeyID:        m.SESAccessKeyID,
			SecretAccessKey:    m.SESSecretAccessKey,
			Endpoint:           m.SESEndpoint,
			InsecureSkipVerify: m.SESInsecureSkipVerify,
		},
		Mailgun: email.MailgunConfig{
			Domain:  m.MailgunDomain,
			APIKey:  m.MailgunAPIKey,
			APIBase: m.MailgunAPIBase,
		},
	}
}
