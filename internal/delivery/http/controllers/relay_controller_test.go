package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactrelay/internal/delivery/http/helpers"
	"contactrelay/internal/domain"
)

// fakeRelayService implements domain.RelayService for handler tests.
type fakeRelayService struct {
	calls []domain.ContactMessage
	err   error
}

func (f *fakeRelayService) Relay(ctx context.Context, msg domain.ContactMessage) error {
	f.calls = append(f.calls, msg)
	return f.err
}

const validBody = `{"name":"Ram","email":"ram@x.com","phone":"9800000000","message":"Hi"}`

func TestRelayController_SendEmail(t *testing.T) {
	relayLogger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

	tests := []struct {
		name       string
		method     string
		body       string
		serviceErr error
		wantStatus int
		wantBody   string
		wantCalls  int
	}{
		{
			name:       "success",
			method:     http.MethodPost,
			body:       validBody,
			wantStatus: http.StatusOK,
			wantBody:   "Email sent successfully!",
			wantCalls:  1,
		},
		{
			name:       "relay failure surfaces reason",
			method:     http.MethodPost,
			body:       validBody,
			serviceErr: errors.New("smtp: 535 auth failed"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Failed to send email: smtp: 535 auth failed",
			wantCalls:  1,
		},
		{
			name:       "GET rejected",
			method:     http.MethodGet,
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   "Method Not Allowed",
		},
		{
			name:       "PUT rejected",
			method:     http.MethodPut,
			body:       validBody,
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   "Method Not Allowed",
		},
		{
			name:       "malformed json",
			method:     http.MethodPost,
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid request body:",
		},
		{
			name:       "extra keys ignored",
			method:     http.MethodPost,
			body:       `{"name":"Ram","email":"ram@x.com","phone":"9800000000","message":"Hi","company":"Acme"}`,
			wantStatus: http.StatusOK,
			wantBody:   "Email sent successfully!",
			wantCalls:  1,
		},
		{
			name:       "invalid fields",
			method:     http.MethodPost,
			body:       `{"name":"","email":"bad","phone":"123","message":""}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Name is required.; Please enter a valid email address.; Phone number must be 10 digits.; Message is required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRelayService{err: tt.serviceErr}
			ctrl := NewRelayController(relayLogger, fake)

			req := httptest.NewRequest(tt.method, "http://test/.netlify/functions/sendEmail", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.SendEmail(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.True(t, strings.HasPrefix(rr.Body.String(), tt.wantBody), "body %q", rr.Body.String())
			assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
			require.Len(t, fake.calls, tt.wantCalls)
			if tt.wantCalls > 0 {
				assert.Equal(t, domain.ContactMessage{Name: "Ram", Email: "ram@x.com", Phone: "9800000000", Message: "Hi"}, fake.calls[0])
			}
			if tt.wantStatus == http.StatusMethodNotAllowed {
				assert.Equal(t, http.MethodPost, rr.Header().Get("Allow"))
			}
		})
	}
}

func TestSendEmailRequest_Validate(t *testing.T) {
	assert.Empty(t, SendEmailRequest{Name: "Ram", Email: "ram@x.com", Phone: "9800000000", Message: "Hi"}.Validate())
	assert.Equal(t,
		[]string{"Phone number must be 10 digits."},
		SendEmailRequest{Name: "Ram", Email: "ram@x.com", Phone: "986-0308415", Message: "Hi"}.Validate(),
	)
}

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	Health(rr, httptest.NewRequest(http.MethodGet, "http://test/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	assert.Nil(t, envelope.Error)
	assert.Equal(t, map[string]any{"status": "ok"}, envelope.Data)
}

func TestNotFound(t *testing.T) {
	rr := httptest.NewRecorder()
	NotFound(rr, httptest.NewRequest(http.MethodGet, "http://test/nope", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	assert.Nil(t, envelope.Data)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, helpers.ErrCodeNotFound, envelope.Error.Code)
	assert.Equal(t, "no route for /nope", envelope.Error.Message)
}

func TestMethodNotAllowed(t *testing.T) {
	rr := httptest.NewRecorder()
	MethodNotAllowed(http.MethodGet, http.MethodHead)(rr, httptest.NewRequest(http.MethodPost, "http://test/health", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, HEAD", rr.Header().Get("Allow"))
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, helpers.ErrCodeMethodNotAllowed, envelope.Error.Code)
	assert.Equal(t, "POST is not allowed on /health", envelope.Error.Message)
}
