// Package mailer delivers composed messages over SMTP with an optional
// resume attachment.
package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/core"
)

// Mailer sends mail through an authenticated STARTTLS session
type Mailer struct {
	fromName string
	fromAddr string
	password string
	host     string
	port     int
	logger   *zap.Logger
}

// NewMailer creates a new SMTP mailer
func NewMailer(fromName, fromAddr, password, host string, port int, logger *zap.Logger) *Mailer {
	return &Mailer{
		fromName: fromName,
		fromAddr: fromAddr,
		password: password,
		host:     host,
		port:     port,
		logger:   logger,
	}
}

// Send delivers one message. A missing attachment path is silently
// omitted rather than failing the delivery.
func (m *Mailer) Send(ctx context.Context, delivery core.Delivery) error {
	if m.fromAddr == "" {
		return fmt.Errorf("sender address not configured")
	}

	message, err := m.buildMessage(delivery)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	client, err := smtp.DialStartTLS(addr, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server %s: %w", addr, err)
	}
	defer client.Close()

	if err := client.Auth(sasl.NewPlainClient("", m.fromAddr, m.password)); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := client.SendMail(m.fromAddr, []string{delivery.Recipient}, bytes.NewReader(message)); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	m.logger.Info("Email sent", zap.String("to", delivery.Recipient))
	return nil
}

// buildMessage assembles a multipart MIME message with the text body and
// the optional attachment
func (m *Mailer) buildMessage(delivery core.Delivery) ([]byte, error) {
	var buf bytes.Buffer
	boundary := fmt.Sprintf("outreach-%d", time.Now().UnixNano())

	fmt.Fprintf(&buf, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", m.fromName), m.fromAddr)
	fmt.Fprintf(&buf, "To: %s\r\n", delivery.Recipient)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", delivery.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", boundary)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(strings.ReplaceAll(delivery.Body, "\n", "\r\n"))
	buf.WriteString("\r\n")

	if delivery.AttachmentPath != "" {
		data, err := os.ReadFile(delivery.AttachmentPath)
		if err != nil {
			// Attachment is omitted silently when the path is missing
			m.logger.Warn("Attachment not found, sending without it",
				zap.String("path", delivery.AttachmentPath))
		} else {
			name := filepath.Base(delivery.AttachmentPath)
			fmt.Fprintf(&buf, "--%s\r\n", boundary)
			fmt.Fprintf(&buf, "Content-Type: application/octet-stream; name=%q\r\n", name)
			buf.WriteString("Content-Transfer-Encoding: base64\r\n")
			fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n", name)
			buf.WriteString("\r\n")

			encoded := base64.StdEncoding.EncodeToString(data)
			for len(encoded) > 76 {
				buf.WriteString(encoded[:76])
				buf.WriteString("\r\n")
				encoded = encoded[76:]
			}
			buf.WriteString(encoded)
			buf.WriteString("\r\n")
		}
	}

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes(), nil
}
