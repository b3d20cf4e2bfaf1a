package validation

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

var (
	// EmailRegex validates email format
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// ObjectIDRegex validates a 24 character hex document id
	objectIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
)

// IsValidEmail checks if the string is a valid email format
func IsValidEmail(email string) bool {
	if len(email) > 254 {
		return false
	}
	return emailRegex.MatchString(email)
}

// IsValidObjectID checks if the string can be a document id
func IsValidObjectID(id string) bool {
	return objectIDRegex.MatchString(id)
}

// IsValidImageURL accepts empty values and absolute http(s) URLs.
func IsValidImageURL(s string) bool {
	if s == "" {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// SanitizeString removes potentially dangerous characters for display
func SanitizeString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")

	// Remove control characters except newlines and tabs
	var result strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || !unicode.IsControl(r) {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// TruncateString truncates a string to maxLen runes
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
