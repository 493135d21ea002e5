package contactform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"contactrelay/internal/domain"
)

// User-facing notices.
const (
	NoticeSent        = "Your message has been sent."
	NoticeUnreachable = "Could not reach the server. Please check your connection and try again."
)

// Result reports how a submit attempt ended.
type Result struct {
	Generation uint64
	Outcome    Outcome
	// Errors holds the per-field messages of the validation pass.
	Errors Errors
	// Notice is the message to show the user: the confirmation on success,
	// the failure reason when the relay call failed. Empty for local
	// validation failures.
	Notice string
	// Close tells the caller to close the form.
	Close bool
	// Discarded is set when the session was closed or resubmitted before the
	// relay answered; the session was left untouched.
	Discarded bool
}

// Controller submits contact form sessions to the email relay.
type Controller struct {
	relay  domain.ContactRelay
	logger *slog.Logger
}

// NewController returns a Controller sending through relay.
func NewController(relay domain.ContactRelay, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{relay: relay, logger: logger}
}

// Submit validates the session and, when valid, sends it to the relay and
// waits for the answer. Exactly one request is issued per call; failures are
// not retried.
func (c *Controller) Submit(ctx context.Context, s *Session) Result {
	form, gen, errs, ok := s.begin()
	if !ok {
		return c.invalid(gen, errs)
	}
	return c.send(ctx, s, form, gen, errs)
}

// SubmitAsync is Submit for event-driven callers. It returns once the session
// is Pending (or has failed validation); the result is delivered on the
// returned channel, which receives exactly one value.
func (c *Controller) SubmitAsync(ctx context.Context, s *Session) <-chan Result {
	out := make(chan Result, 1)
	form, gen, errs, ok := s.begin()
	if !ok {
		out <- c.invalid(gen, errs)
		return out
	}
	go func() {
		out <- c.send(ctx, s, form, gen, errs)
	}()
	return out
}

func (c *Controller) invalid(gen uint64, errs Errors) Result {
	c.logger.Debug("contact form rejected", "fields", errs.Failing())
	return Result{
		Generation: gen,
		Outcome:    Outcome{State: Failed, Reason: ReasonInvalid},
		Errors:     errs,
	}
}

func (c *Controller) send(ctx context.Context, s *Session, form Form, gen uint64, errs Errors) Result {
	res := Result{Generation: gen, Errors: errs}

	reply, err := c.call(ctx, form.ContactMessage())
	if err != nil {
		reason := failureReason(err)
		c.logger.WarnContext(ctx, "contact form submission failed", "generation", gen, "err", err)
		res.Outcome = Outcome{State: Failed, Reason: reason}
		res.Notice = reason
	} else {
		c.logger.InfoContext(ctx, "contact form submitted", "generation", gen)
		res.Outcome = Outcome{State: Succeeded}
		res.Notice = strings.TrimSpace(reply)
		if res.Notice == "" {
			res.Notice = NoticeSent
		}
		res.Close = true
	}

	if !s.settle(gen, res.Outcome) {
		c.logger.DebugContext(ctx, "discarding stale contact form result", "generation", gen)
		res.Discarded = true
		res.Close = false
	}
	return res
}

// call invokes the relay, turning a panic in the port into an error.
func (c *Controller) call(ctx context.Context, msg domain.ContactMessage) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("relay panicked: %v", r)
		}
	}()
	return c.relay.Send(ctx, msg)
}

func failureReason(err error) string {
	var relayErr *domain.RelayError
	if errors.As(err, &relayErr) {
		if relayErr.Message != "" {
			return relayErr.Message
		}
		return fmt.Sprintf("The message could not be sent (status %d). Please try again.", relayErr.StatusCode)
	}
	return NoticeUnreachable
}
