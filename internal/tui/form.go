package tui

import (
	"context"
	"errors"
	"fmt"

	"contactrelay/internal/contactform"
)

type fieldPrompt struct {
	label     string
	help      string
	multiline bool
}

var prompts = map[contactform.Field]fieldPrompt{
	contactform.FieldName:    {label: "Name"},
	contactform.FieldEmail:   {label: "Email", help: "We reply to this address."},
	contactform.FieldPhone:   {label: "Phone", help: "10 digits, no spaces or dashes."},
	contactform.FieldMessage: {label: "Message", multiline: true},
}

// RunContactForm drives one contact form session from the terminal until the
// message is sent or the user gives up.
//
// All fields are asked once. After a failed validation pass only the failing
// fields are asked again, prefilled with what was typed. After a relay failure
// the user chooses whether to resubmit the same values. Aborting closes the
// session and returns ErrAborted; declining a retry returns ErrNotSent.
func RunContactForm(ctx context.Context, d PromptDriver, ctrl *contactform.Controller, session *contactform.Session) error {
	pending := contactform.Fields
	for {
		if err := askFields(ctx, d, session, pending); err != nil {
			if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) {
				session.Close()
			}
			return err
		}

		res := ctrl.Submit(ctx, session)
		switch res.Outcome.State {
		case contactform.Succeeded:
			return d.Info(ctx, res.Notice)
		case contactform.Failed:
			if res.Errors.Any() {
				for _, msg := range res.Errors.Messages() {
					if err := d.Info(ctx, "  "+msg); err != nil {
						return err
					}
				}
				pending = res.Errors.Failing()
				continue
			}
			if err := d.Info(ctx, res.Notice); err != nil {
				return err
			}
			again, err := d.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
			if err != nil {
				if errors.Is(err, ErrAborted) {
					session.Close()
				}
				return err
			}
			if !again {
				session.Close()
				return ErrNotSent
			}
			pending = nil
		default:
			return fmt.Errorf("submit ended in state %s", res.Outcome.State)
		}
	}
}

func askFields(ctx context.Context, d PromptDriver, session *contactform.Session, fields []contactform.Field) error {
	for _, field := range fields {
		current, err := session.Form().Get(field)
		if err != nil {
			return err
		}
		p := prompts[field]

		var value string
		if p.multiline {
			value, err = d.TextArea(ctx, TextAreaConfig{Message: p.label, Default: current, Help: p.help})
		} else {
			value, err = d.Input(ctx, InputConfig{Message: p.label, Default: current, Help: p.help})
		}
		if err != nil {
			return err
		}
		if err := session.Update(field, value); err != nil {
			return err
		}
	}
	return nil
}
