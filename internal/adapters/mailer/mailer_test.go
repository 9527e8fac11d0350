package mailer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/core"
)

func newTestMailer() *Mailer {
	return NewMailer("Spoorthi", "me@example.com", "secret", "smtp.example.com", 587, zap.NewNop())
}

func TestBuildMessageHeadersAndBody(t *testing.T) {
	m := newTestMailer()

	message, err := m.buildMessage(core.Delivery{
		Recipient: "jane.doe@acme.com",
		Subject:   "Quick question",
		Body:      "Hi Jane,\nshort note.",
	})
	require.NoError(t, err)

	text := string(message)
	assert.Contains(t, text, "From: Spoorthi <me@example.com>")
	assert.Contains(t, text, "To: jane.doe@acme.com")
	assert.Contains(t, text, "Subject: Quick question")
	assert.Contains(t, text, "Content-Type: multipart/mixed")
	// Body newlines are CRLF on the wire
	assert.Contains(t, text, "Hi Jane,\r\nshort note.")
}

func TestBuildMessageWithAttachment(t *testing.T) {
	m := newTestMailer()

	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("pdf bytes"), 0o644))

	message, err := m.buildMessage(core.Delivery{
		Recipient:      "jane.doe@acme.com",
		Subject:        "Hello",
		Body:           "body",
		AttachmentPath: path,
	})
	require.NoError(t, err)

	text := string(message)
	assert.Contains(t, text, `Content-Disposition: attachment; filename="resume.pdf"`)
	assert.Contains(t, text, "Content-Transfer-Encoding: base64")
}

func TestBuildMessageMissingAttachmentIsOmitted(t *testing.T) {
	m := newTestMailer()

	message, err := m.buildMessage(core.Delivery{
		Recipient:      "jane.doe@acme.com",
		Subject:        "Hello",
		Body:           "body",
		AttachmentPath: filepath.Join(t.TempDir(), "gone.pdf"),
	})
	require.NoError(t, err)

	assert.NotContains(t, string(message), "Content-Disposition: attachment")
}

func TestSendRequiresSenderAddress(t *testing.T) {
	m := NewMailer("Spoorthi", "", "", "smtp.example.com", 587, zap.NewNop())

	err := m.Send(context.Background(), core.Delivery{Recipient: "jane.doe@acme.com"})
	assert.Error(t, err)
}
