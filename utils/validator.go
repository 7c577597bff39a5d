// utils/validator.go - Input validation
package utils

import (
	"net/url"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateURL checks that a string parses as an absolute http(s) URL.
func ValidateURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// SanitizeURL trims the URL and strips javascript: payloads.
func SanitizeURL(raw string) string {
	sanitized := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(sanitized), "javascript:") {
		return ""
	}
	return sanitized
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")
	return input
}
