package contactform

import "sync"

// State is the phase of a submit attempt.
type State int

const (
	Idle State = iota
	Pending
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// ReasonInvalid is the outcome reason for an attempt stopped by local
// validation. It is not meant to be shown as a banner; the per-field errors are.
const ReasonInvalid = "validation failed"

// Outcome is the state of the latest submit attempt. Reason is set only when
// State is Failed.
type Outcome struct {
	State  State
	Reason string
}

// Session is one open contact form: its values, their validation errors and
// the outcome of the latest submit attempt. A Session is safe for use by
// multiple goroutines, but callers should not submit while the outcome is
// Pending.
type Session struct {
	mu         sync.Mutex
	form       Form
	errors     Errors
	outcome    Outcome
	generation uint64
}

// NewSession opens an empty form.
func NewSession() *Session {
	return &Session{errors: NewErrors()}
}

// Update sets field to value and clears that field's error. Other fields'
// errors are left as they are.
func (s *Session) Update(field Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.form.Set(field, value); err != nil {
		return err
	}
	s.errors[field] = ""
	return nil
}

// Validate revalidates the current values and replaces the stored errors.
func (s *Session) Validate() (bool, Errors) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok, errs := s.form.Validate()
	s.errors = errs
	return ok, errs.clone()
}

// Form returns a copy of the current values.
func (s *Session) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Errors returns a copy of the current validation errors.
func (s *Session) Errors() Errors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors.clone()
}

// Outcome returns the outcome of the latest submit attempt.
func (s *Session) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Close discards the values, errors and outcome. An attempt still in flight
// is not aborted, but its result will not be applied.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.reset()
	s.outcome = Outcome{}
}

func (s *Session) reset() {
	s.form = Form{}
	s.errors = NewErrors()
}

// begin starts a new attempt under a new generation, so any attempt still in
// flight becomes stale. If the form passes validation the session moves to
// Pending; otherwise it fails locally.
func (s *Session) begin() (form Form, generation uint64, errs Errors, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	ok, errs = s.form.Validate()
	s.errors = errs
	if !ok {
		s.outcome = Outcome{State: Failed, Reason: ReasonInvalid}
		return Form{}, s.generation, errs.clone(), false
	}
	s.outcome = Outcome{State: Pending}
	return s.form, s.generation, errs.clone(), true
}

// settle applies the result of the attempt identified by generation. It
// returns false, changing nothing, when the session was closed or another
// attempt started since.
func (s *Session) settle(generation uint64, outcome Outcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return false
	}
	s.outcome = outcome
	if outcome.State == Succeeded {
		s.reset()
	}
	return true
}
