// Package verify implements the live deliverability probe: an SMTP
// recipient check against a domain's primary mail exchanger, without
// sending any mail.
package verify

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/core"
)

// Probe asks the primary MX whether an address would accept mail.
// Outcomes are tri-state; a transport failure is indeterminate, which
// callers must never treat as positive.
type Probe struct {
	enabled bool
	timeout time.Duration
	logger  *zap.Logger
}

// NewProbe creates a new deliverability probe. With enabled=false (for
// offline testing) every well-formed address probes positive.
func NewProbe(enabled bool, timeout time.Duration, logger *zap.Logger) *Probe {
	return &Probe{
		enabled: enabled,
		timeout: timeout,
		logger:  logger,
	}
}

// ValidFormat reports whether the address parses as a single
// local-part@domain pair with a dot in the domain
func ValidFormat(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	if strings.ContainsAny(email, " \t\n") {
		return false
	}
	return strings.Contains(parts[1], ".")
}

// Probe checks one address. 250 from the exchanger is positive, any
// other reply is negative, and transport failures are indeterminate.
func (p *Probe) Probe(ctx context.Context, email string) core.ProbeOutcome {
	if !ValidFormat(email) {
		return core.ProbeNegative
	}

	if !p.enabled {
		// Offline mode: format validation only
		return core.ProbePositive
	}

	domain := strings.SplitN(email, "@", 2)[1]

	records, err := net.DefaultResolver.LookupMX(ctx, domain)
	if err != nil || len(records) == 0 {
		return core.ProbeIndeterminate
	}
	mxHost := strings.TrimSuffix(records[0].Host, ".")

	dialer := &net.Dialer{Timeout: p.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(mxHost, "25"))
	if err != nil {
		p.logger.Debug("Probe connection failed", zap.String("mx", mxHost), zap.Error(err))
		return core.ProbeIndeterminate
	}
	_ = conn.SetDeadline(time.Now().Add(p.timeout))

	client := smtp.NewClient(conn)
	defer client.Close()

	if err := client.Hello(domain); err != nil {
		return core.ProbeIndeterminate
	}
	if err := client.Mail("", nil); err != nil {
		return core.ProbeIndeterminate
	}

	err = client.Rcpt(email, nil)
	_ = client.Quit()
	if err == nil {
		// 250: the exchanger accepted the recipient
		return core.ProbePositive
	}
	if _, ok := err.(*smtp.SMTPError); ok {
		p.logger.Debug("Recipient rejected", zap.String("email", email), zap.Error(err))
		return core.ProbeNegative
	}
	return core.ProbeIndeterminate
}
