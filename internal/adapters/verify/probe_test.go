package verify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/core"
)

func TestValidFormat(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"jane.doe@example.com", true},
		{"j@sub.example.co.uk", true},
		{"no-at-sign", false},
		{"two@@example.com", false},
		{"@example.com", false},
		{"jane@", false},
		{"jane@nodot", false},
		{"jane doe@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidFormat(tt.email))
		})
	}
}

func TestProbeDisabledAcceptsWellFormed(t *testing.T) {
	probe := NewProbe(false, time.Second, zap.NewNop())

	assert.Equal(t, core.ProbePositive, probe.Probe(context.Background(), "jane.doe@example.com"))
	assert.Equal(t, core.ProbeNegative, probe.Probe(context.Background(), "not-an-email"))
}
