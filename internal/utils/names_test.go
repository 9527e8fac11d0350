package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"spaces", "Acme Data Labs", "Acme_Data_Labs"},
		{"path separators", "a/b\\c", "a_b_c"},
		{"punctuation", "O'Brien & Co.", "O_Brien___Co."},
		{"already safe", "plain-name_1.2", "plain-name_1.2"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SafeName(tt.input))
		})
	}
}

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain domain", "example.com", "example.com"},
		{"https with www", "https://www.example.com", "example.com"},
		{"path stripped", "http://example.com/about/team", "example.com"},
		{"port stripped", "example.com:8080", "example.com"},
		{"uppercase", "  HTTPS://Example.COM/  ", "example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDomain(tt.input))
		})
	}
}

func TestSplitFullName(t *testing.T) {
	first, last, err := SplitFullName("Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe", last)

	first, last, err = SplitFullName("  Mary Anne van der Berg ")
	require.NoError(t, err)
	assert.Equal(t, "Mary", first)
	assert.Equal(t, "Berg", last)

	_, _, err = SplitFullName("Cher")
	assert.Error(t, err)

	_, _, err = SplitFullName("   ")
	assert.Error(t, err)
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 100))
	assert.Equal(t, "short", TruncateText("short", 0))

	truncated := TruncateText("abcdefghij", 4)
	assert.Equal(t, "abcd...", truncated)

	// Multibyte runes are never split
	text := "héllo wörld"
	result := TruncateText(text, 2)
	assert.Contains(t, result, "...")
}
