package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"contactrelay/internal/domain"
)

// DefaultPath is the route the landing page posts contact messages to.
const DefaultPath = "/.netlify/functions/sendEmail"

// maxReplyBytes caps how much of the relay's answer is read.
const maxReplyBytes = 64 << 10

type httpRelay struct {
	client   *http.Client
	endpoint string
}

// NewHTTPRelay returns a ContactRelay that POSTs messages as JSON to endpoint.
func NewHTTPRelay(client *http.Client, endpoint string) domain.ContactRelay {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpRelay{client: client, endpoint: endpoint}
}

func (r *httpRelay) Send(ctx context.Context, msg domain.ContactMessage) (string, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to encode contact message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach relay: %w", err)
	}
	defer resp.Body.Close()

	reply, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read relay response: %w", err)
	}
	text := strings.TrimSpace(string(reply))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &domain.RelayError{StatusCode: resp.StatusCode, Message: text}
	}
	return text, nil
}
