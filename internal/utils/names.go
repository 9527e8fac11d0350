package utils

import (
	"fmt"
	"strings"
	"unicode"
)

// SafeName converts a company or contact name into a filesystem-safe
// token: spaces and path separators become underscores.
func SafeName(name string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_")
	safe := replacer.Replace(name)

	// Drop anything else that could upset a filesystem
	var b strings.Builder
	for _, r := range safe {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// NormalizeDomain reduces a raw website string to a bare registrable
// domain: protocol, www. prefix, path, and port are stripped.
func NormalizeDomain(raw string) string {
	domain := strings.ToLower(strings.TrimSpace(raw))
	if idx := strings.Index(domain, "//"); idx >= 0 {
		domain = domain[idx+2:]
	}
	domain = strings.TrimPrefix(domain, "www.")
	if idx := strings.Index(domain, "/"); idx >= 0 {
		domain = domain[:idx]
	}
	if idx := strings.Index(domain, ":"); idx >= 0 {
		domain = domain[:idx]
	}
	return domain
}

// SplitFullName splits a full name into first and last tokens.
// Middle names are ignored; the last token is the last name.
func SplitFullName(fullName string) (first, last string, err error) {
	parts := strings.Fields(strings.TrimSpace(fullName))
	if len(parts) < 2 {
		return "", "", fmt.Errorf("full name must include first and last name: %q", fullName)
	}
	return parts[0], parts[len(parts)-1], nil
}
