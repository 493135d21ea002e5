package domain

import (
	"context"
	"fmt"
)

// ContactMessage is the payload a visitor submits through the contact form.
// swagger:model ContactMessage
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ContactRelay delivers a contact message to the email-relay endpoint and
// returns the endpoint's confirmation text.
type ContactRelay interface {
	Send(ctx context.Context, msg ContactMessage) (string, error)
}

// RelayService composes the notification email for a contact message and
// hands it to the configured mail account.
type RelayService interface {
	Relay(ctx context.Context, msg ContactMessage) error
}

// RelayError is returned by a ContactRelay when the endpoint answered with a
// non-2xx status. Message holds the endpoint's body, trimmed.
type RelayError struct {
	StatusCode int
	Message    string
}

func (e *RelayError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relay returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("relay returned status %d: %s", e.StatusCode, e.Message)
}
