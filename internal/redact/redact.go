// Package redact scrubs sensitive information from strings before they are
// logged or echoed in error responses: credentials, connection strings,
// bearer tokens, and email addresses.
package redact

import "regexp"

// Redaction placeholders.
const (
	credentialPlaceholder = "[REDACTED_CREDENTIAL]"
	keyPlaceholder        = "[REDACTED_KEY]"
	jwtPlaceholder        = "[REDACTED_JWT]"
	emailPlaceholder      = "[REDACTED_EMAIL]"
)

// replacement pairs a pattern with the placeholder that stands in for its
// matches.
type replacement struct {
	pattern     *regexp.Regexp
	placeholder string
}

var replacements = []replacement{
	// Database connection strings with inline credentials.
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`), credentialPlaceholder + "@"},

	// password=..., password: ...
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`), credentialPlaceholder},

	// API keys, tokens, and secrets in key=value form.
	{regexp.MustCompile(`(?i)(api[_-]?key|token|secret|bearer)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), keyPlaceholder},

	// Standard three-part base64url JWTs.
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), jwtPlaceholder},

	// Email addresses.
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), emailPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range replacements {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's message. Returns an
// empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
