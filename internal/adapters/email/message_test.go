package email

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactrelay/internal/domain"
)

var fixedNow = time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

func sampleEmail() domain.Email {
	return domain.Email{
		From:    mail.Address{Name: "Ram", Address: "ram@x.com"},
		ReplyTo: "ram@x.com",
		To:      []string{"owner@example.com"},
		Subject: "New Message from Contact Form",
		Text:    "Name: Ram\nEmail: ram@x.com\nPhone: 9800000000\nMessage: Hi",
	}
}

func TestBuildMessage_PlainText(t *testing.T) {
	raw, err := buildMessage(sampleEmail(), fixedNow)
	require.NoError(t, err)

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, `"Ram" <ram@x.com>`, msg.Header.Get("From"))
	assert.Equal(t, "<owner@example.com>", msg.Header.Get("To"))
	assert.Equal(t, "<ram@x.com>", msg.Header.Get("Reply-To"))
	assert.Equal(t, "New Message from Contact Form", msg.Header.Get("Subject"))
	assert.Equal(t, "text/plain; charset=UTF-8", msg.Header.Get("Content-Type"))
	date, err := msg.Header.Date()
	require.NoError(t, err)
	assert.True(t, fixedNow.Equal(date))

	body, err := io.ReadAll(quotedprintable.NewReader(msg.Body))
	require.NoError(t, err)
	assert.Equal(t, sampleEmail().Text, strings.ReplaceAll(string(body), "\r\n", "\n"))
}

func TestBuildMessage_Alternative(t *testing.T) {
	e := sampleEmail()
	e.HTML = "<p>Hi</p>"

	raw, err := buildMessage(e, fixedNow)
	require.NoError(t, err)

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/alternative", mediaType)

	mr := multipart.NewReader(msg.Body, params["boundary"])
	var types []string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		types = append(types, part.Header.Get("Content-Type"))
	}
	assert.Equal(t, []string{"text/plain; charset=UTF-8", "text/html; charset=UTF-8"}, types)
}

func TestBuildMessage_EncodesUnsafeNames(t *testing.T) {
	e := sampleEmail()
	e.From.Name = "Ram\r\nBcc: victim@example.com"
	e.Subject = "Nouveau message: café"

	raw, err := buildMessage(e, fixedNow)
	require.NoError(t, err)

	head := string(raw[:bytes.Index(raw, []byte("\r\n\r\n"))])
	for _, line := range strings.Split(head, "\r\n") {
		assert.False(t, strings.HasPrefix(line, "Bcc:"), "injected header line %q", line)
	}

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	dec := new(mime.WordDecoder)
	subject, err := dec.DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Nouveau message: café", subject)
}

func TestBuildMessage_Errors(t *testing.T) {
	e := sampleEmail()
	e.To = nil
	_, err := buildMessage(e, fixedNow)
	require.Error(t, err)

	e.To = []string{"not an address"}
	_, err = buildMessage(e, fixedNow)
	require.Error(t, err)
}
