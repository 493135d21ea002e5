// Package contactform holds the state of one contact form session and the
// controller that submits it to the email relay.
package contactform

import (
	"errors"
	"regexp"

	"contactrelay/internal/domain"
)

// Field names one of the four contact form inputs.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldMessage Field = "message"
)

// Fields lists the form inputs in display order.
var Fields = []Field{FieldName, FieldEmail, FieldPhone, FieldMessage}

// ErrUnknownField is returned when an update names a field the form does not have.
var ErrUnknownField = errors.New("unknown form field")

// Validation messages shown next to each field.
const (
	MsgNameRequired    = "Name is required."
	MsgEmailRequired   = "Email is required."
	MsgEmailInvalid    = "Please enter a valid email address."
	MsgPhoneRequired   = "Phone number is required."
	MsgPhoneInvalid    = "Phone number must be 10 digits."
	MsgMessageRequired = "Message is required."
)

var (
	// Structural check only: something@something.something, no whitespace.
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// Form holds the values a visitor typed into the contact form.
type Form struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Get returns the value of field.
func (f Form) Get(field Field) (string, error) {
	switch field {
	case FieldName:
		return f.Name, nil
	case FieldEmail:
		return f.Email, nil
	case FieldPhone:
		return f.Phone, nil
	case FieldMessage:
		return f.Message, nil
	}
	return "", ErrUnknownField
}

// Set assigns value to field.
func (f *Form) Set(field Field, value string) error {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	case FieldMessage:
		f.Message = value
	default:
		return ErrUnknownField
	}
	return nil
}

// Validate checks every field and reports whether the form can be submitted.
// The returned Errors always has an entry for each field; passing fields map
// to the empty string. Validate does not modify the form.
func (f Form) Validate() (bool, Errors) {
	errs := NewErrors()

	if f.Name == "" {
		errs[FieldName] = MsgNameRequired
	}

	switch {
	case f.Email == "":
		errs[FieldEmail] = MsgEmailRequired
	case !emailPattern.MatchString(f.Email):
		errs[FieldEmail] = MsgEmailInvalid
	}

	switch {
	case f.Phone == "":
		errs[FieldPhone] = MsgPhoneRequired
	case !phonePattern.MatchString(f.Phone):
		errs[FieldPhone] = MsgPhoneInvalid
	}

	if f.Message == "" {
		errs[FieldMessage] = MsgMessageRequired
	}

	return !errs.Any(), errs
}

// ContactMessage returns the wire payload for the form.
func (f Form) ContactMessage() domain.ContactMessage {
	return domain.ContactMessage{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Message: f.Message,
	}
}

// FormFromMessage builds a Form from a received payload.
func FormFromMessage(msg domain.ContactMessage) Form {
	return Form{
		Name:    msg.Name,
		Email:   msg.Email,
		Phone:   msg.Phone,
		Message: msg.Message,
	}
}

// Errors maps each field to its validation message. An empty message means
// the field passed.
type Errors map[Field]string

// NewErrors returns an Errors with an empty entry for every field.
func NewErrors() Errors {
	errs := make(Errors, len(Fields))
	for _, f := range Fields {
		errs[f] = ""
	}
	return errs
}

// Any reports whether at least one field has a message.
func (e Errors) Any() bool {
	for _, msg := range e {
		if msg != "" {
			return true
		}
	}
	return false
}

// Failing returns the fields with a message, in display order.
func (e Errors) Failing() []Field {
	var out []Field
	for _, f := range Fields {
		if e[f] != "" {
			out = append(out, f)
		}
	}
	return out
}

// Messages returns the non-empty messages in display order.
func (e Errors) Messages() []string {
	var out []string
	for _, f := range e.Failing() {
		out = append(out, e[f])
	}
	return out
}

func (e Errors) clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
