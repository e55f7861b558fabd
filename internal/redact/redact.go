// Package redact strips sensitive fragments from strings before they are
// logged or returned in error responses. It covers the things this service
// actually handles: player email addresses, database connection strings,
// passwords, SQL text and local file paths.
package redact

import (
	"regexp"
	"strings"
)

// Placeholders substituted for redacted fragments.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	PathPlaceholder       = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules are applied in order; connection strings go first so that their
// user info is not partially matched as an email address.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`(?i)\b(postgres(?:ql)?|mysql|sqlite|file)://[^@\s]+@`),
		placeholder: CredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(password|passwd|pwd)\s*[=:]\s*['"]?[^'"&\s]{3,}`),
		placeholder: CredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		placeholder: EmailPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`\b(SELECT|INSERT INTO|UPDATE|DELETE FROM)\b[^;\n]*`),
		placeholder: SQLPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(/[\w.-]+){2,}`),
		placeholder: PathPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// Email masks the local part of an address for log attributes, keeping the
// first character and the domain: "player@example.com" becomes "p***@example.com".
func Email(addr string) string {
	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return EmailPlaceholder
	}
	local, domain := addr[:at], addr[at+1:]
	if local == "" {
		return "***@" + domain
	}
	return local[:1] + "***@" + domain
}
