package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSource struct {
	name   string
	result DirectoryResult
	calls  int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Lookup(ctx context.Context, firstName, lastName, domain string) DirectoryResult {
	s.calls++
	return s.result
}

type stubProbe struct {
	outcomes map[string]ProbeOutcome
	fallback ProbeOutcome
}

func (p *stubProbe) Probe(ctx context.Context, email string) ProbeOutcome {
	if outcome, ok := p.outcomes[email]; ok {
		return outcome
	}
	return p.fallback
}

type stubMX struct{ has bool }

func (m stubMX) HasMXRecords(ctx context.Context, domain string) bool { return m.has }

func TestGeneratePermutations(t *testing.T) {
	got := GeneratePermutations("John", "Smith", "example.com")

	expected := []string{
		"john@example.com",
		"john.smith@example.com",
		"johnsmith@example.com",
		"smith.john@example.com",
		"jsmith@example.com",
		"johns@example.com",
		"j.smith@example.com",
		"john-smith@example.com",
		"smithjohn@example.com",
		"john_smith@example.com",
		"js@example.com",
	}
	assert.Equal(t, expected, got)
}

func TestGeneratePermutationsDeduplicates(t *testing.T) {
	// Single-letter names collapse several forms into one
	got := GeneratePermutations("J", "S", "example.com")
	seen := make(map[string]bool)
	for _, email := range got {
		assert.False(t, seen[email], "duplicate permutation %s", email)
		seen[email] = true
	}
}

func TestResolveDirectoryHit(t *testing.T) {
	source := &stubSource{
		name:   "hunter",
		result: DirectoryResult{Emails: []string{"jane.doe@example.com"}, Status: "success"},
	}
	resolver := NewEmailResolver(
		[]DirectorySource{source},
		&stubProbe{fallback: ProbeNegative},
		stubMX{has: true},
		zap.NewNop(),
	)

	set, err := resolver.Resolve(context.Background(), "Jane Doe", "https://www.example.com")
	require.NoError(t, err)

	assert.Equal(t, "example.com", set.Domain)
	assert.Equal(t, "jane.doe@example.com", set.MostLikely)
	assert.Equal(t, "high", set.Confidence)
	assert.Equal(t, "success", set.SourceStatuses["hunter"])
	assert.Equal(t, 1, source.calls)
}

func TestResolveNoMXRecords(t *testing.T) {
	resolver := NewEmailResolver(
		nil,
		&stubProbe{fallback: ProbePositive},
		stubMX{has: false},
		zap.NewNop(),
	)

	set, err := resolver.Resolve(context.Background(), "Jane Doe", "nomx.invalid")
	require.NoError(t, err)

	// No probes run without MX records; the best guess is synthesized
	assert.Equal(t, PermutationsNoMX, set.SourceStatuses["permutations"])
	assert.Empty(t, set.Candidates)
	assert.Equal(t, "jane.doe@nomx.invalid", set.MostLikely)
	assert.Equal(t, "low", set.Confidence)
	assert.NotEmpty(t, set.Note)
}

func TestResolveVerifiedPermutations(t *testing.T) {
	probe := &stubProbe{
		outcomes: map[string]ProbeOutcome{"jane.doe@example.com": ProbePositive},
		fallback: ProbeNegative,
	}
	resolver := NewEmailResolver(nil, probe, stubMX{has: true}, zap.NewNop())

	set, err := resolver.Resolve(context.Background(), "Jane Doe", "example.com")
	require.NoError(t, err)

	assert.Equal(t, PermutationsOK, set.SourceStatuses["permutations"])
	assert.Equal(t, []string{"jane.doe@example.com"}, set.Candidates)
	assert.Equal(t, "jane.doe@example.com", set.MostLikely)
	assert.Equal(t, "medium", set.Confidence)
}

func TestResolveIndeterminateNeverAdmits(t *testing.T) {
	probe := &stubProbe{fallback: ProbeIndeterminate}
	resolver := NewEmailResolver(nil, probe, stubMX{has: true}, zap.NewNop())

	set, err := resolver.Resolve(context.Background(), "Jane Doe", "example.com")
	require.NoError(t, err)

	assert.Equal(t, PermutationsNoneValid, set.SourceStatuses["permutations"])
	assert.Empty(t, set.Candidates)
	assert.Equal(t, "low", set.Confidence)
}

func TestResolveRejectsMalformedInput(t *testing.T) {
	resolver := NewEmailResolver(nil, &stubProbe{}, stubMX{has: true}, zap.NewNop())

	_, err := resolver.Resolve(context.Background(), "Cher", "example.com")
	assert.Error(t, err)

	_, err = resolver.Resolve(context.Background(), "", "example.com")
	assert.Error(t, err)

	_, err = resolver.Resolve(context.Background(), "Jane Doe", "")
	assert.Error(t, err)
}

func TestRenderPattern(t *testing.T) {
	tests := []struct {
		pattern  string
		expected string
	}{
		{"{first}.{last}", "jane.doe@example.com"},
		{"{f}{last}", "jdoe@example.com"},
		{"{first}{l}", "janed@example.com"},
		{"{fi}{li}", "jd@example.com"},
		{"{f1}.{l1}", "j.d@example.com"},
		{"{first}.{last}@other.org", "jane.doe@example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.expected, RenderPattern(tt.pattern, "Jane", "Doe", "example.com"))
		})
	}
}
