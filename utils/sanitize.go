package utils

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	cardPattern  = regexp.MustCompile(`\b\d{12,19}\b`)
	phonePattern = regexp.MustCompile(`\b(?:\+?\d[\d\s-]{8,}\d)\b`)
	linkPattern  = regexp.MustCompile(`(?i)https?://\S+`)
)

// SanitizeSensitiveText redacts emails, card numbers, phone numbers and
// links from chat content before it is stored.
func SanitizeSensitiveText(content string) string {
	content = emailPattern.ReplaceAllString(content, "[hidden-email]")
	content = cardPattern.ReplaceAllString(content, "[hidden-card]")
	content = phonePattern.ReplaceAllString(content, "[hidden-phone]")
	content = linkPattern.ReplaceAllString(content, "[hidden-link]")
	return content
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsAllowedCollegeEmail checks the address belongs to the configured campus
// domain.
func IsAllowedCollegeEmail(email, domain string) bool {
	return strings.HasSuffix(NormalizeEmail(email), "@"+strings.ToLower(domain))
}
