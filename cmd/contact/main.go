// Command contact fills in the contact form from a terminal and submits it
// to the email relay.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"contactrelay/config"
	"contactrelay/internal/adapters/relay"
	"contactrelay/internal/contactform"
	"contactrelay/internal/tui"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)

	client := &http.Client{Timeout: cfg.Timeout}
	ctrl := contactform.NewController(relay.NewHTTPRelay(client, cfg.RelayURL), logger)

	err = tui.RunContactForm(context.Background(), tui.NewSurveyDriver(), ctrl, contactform.NewSession())
	switch {
	case err == nil:
	case errors.Is(err, tui.ErrAborted):
		os.Exit(130)
	case errors.Is(err, tui.ErrNotSent):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
