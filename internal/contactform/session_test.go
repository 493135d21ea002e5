package contactform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(t *testing.T, s *Session, f Form) {
	t.Helper()
	require.NoError(t, s.Update(FieldName, f.Name))
	require.NoError(t, s.Update(FieldEmail, f.Email))
	require.NoError(t, s.Update(FieldPhone, f.Phone))
	require.NoError(t, s.Update(FieldMessage, f.Message))
}

func TestSession_NewIsEmpty(t *testing.T) {
	s := NewSession()
	assert.Equal(t, Form{}, s.Form())
	assert.Equal(t, NewErrors(), s.Errors())
	assert.Equal(t, Outcome{State: Idle}, s.Outcome())
}

func TestSession_UpdateClearsOnlyThatFieldError(t *testing.T) {
	s := NewSession()
	ok, errs := s.Validate()
	require.False(t, ok)
	require.Len(t, errs.Failing(), 4)

	require.NoError(t, s.Update(FieldEmail, "b"))

	got := s.Errors()
	assert.Equal(t, "", got[FieldEmail])
	assert.Equal(t, MsgNameRequired, got[FieldName])
	assert.Equal(t, MsgPhoneRequired, got[FieldPhone])
	assert.Equal(t, MsgMessageRequired, got[FieldMessage])
	assert.Equal(t, "b", s.Form().Email)
}

func TestSession_UpdateUnknownField(t *testing.T) {
	s := NewSession()
	require.ErrorIs(t, s.Update("company", "Acme"), ErrUnknownField)
	assert.Equal(t, Form{}, s.Form())
}

func TestSession_ValidateStoresErrorsWithoutTouchingValues(t *testing.T) {
	s := NewSession()
	fill(t, s, Form{Name: "Ram", Email: "bob@example", Phone: "98603084", Message: "Hi"})

	ok, errs := s.Validate()
	assert.False(t, ok)
	assert.Equal(t, MsgEmailInvalid, errs[FieldEmail])
	assert.Equal(t, MsgPhoneInvalid, errs[FieldPhone])
	assert.Equal(t, errs, s.Errors())
	assert.Equal(t, "bob@example", s.Form().Email)
	assert.Equal(t, Outcome{State: Idle}, s.Outcome())

	// Returned errors are a copy.
	errs[FieldName] = "tampered"
	assert.Equal(t, "", s.Errors()[FieldName])
}

func TestSession_Close(t *testing.T) {
	s := NewSession()
	fill(t, s, validForm())
	_, _ = s.Validate()

	s.Close()

	assert.Equal(t, Form{}, s.Form())
	assert.Equal(t, NewErrors(), s.Errors())
	assert.Equal(t, Outcome{State: Idle}, s.Outcome())
}

func TestSession_SettleIgnoresStaleGeneration(t *testing.T) {
	s := NewSession()
	fill(t, s, validForm())

	_, gen, _, ok := s.begin()
	require.True(t, ok)
	assert.Equal(t, Pending, s.Outcome().State)

	_, newer, _, ok := s.begin()
	require.True(t, ok)
	require.Greater(t, newer, gen)

	assert.False(t, s.settle(gen, Outcome{State: Succeeded}))
	assert.Equal(t, Pending, s.Outcome().State)
	assert.Equal(t, validForm(), s.Form())

	assert.True(t, s.settle(newer, Outcome{State: Failed, Reason: "boom"}))
	assert.Equal(t, Outcome{State: Failed, Reason: "boom"}, s.Outcome())
	assert.Equal(t, validForm(), s.Form())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", State(42).String())
}
