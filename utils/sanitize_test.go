package utils

import (
	"strings"
	"testing"
)

func TestSanitizeSensitiveText(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		redacted string
		kept     string
	}{
		{
			name:     "email",
			input:    "reach me at rahul.k@college.edu thanks",
			redacted: "rahul.k@college.edu",
			kept:     "reach me at",
		},
		{
			name:     "card number",
			input:    "my card 4111111111111111 got lost with the wallet",
			redacted: "4111111111111111",
			kept:     "wallet",
		},
		{
			name:     "phone number",
			input:    "call +91 98765 43210 after class",
			redacted: "98765 43210",
			kept:     "after class",
		},
		{
			name:     "link",
			input:    "see https://example.com/listing for photos",
			redacted: "https://example.com/listing",
			kept:     "for photos",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := SanitizeSensitiveText(tc.input)
			if strings.Contains(got, tc.redacted) {
				t.Errorf("output still contains %q: %q", tc.redacted, got)
			}
			if !strings.Contains(got, tc.kept) {
				t.Errorf("output lost surrounding text %q: %q", tc.kept, got)
			}
		})
	}
}

func TestSanitizePlainTextUntouched(t *testing.T) {
	input := "is the blue bottle still with you"
	if got := SanitizeSensitiveText(input); got != input {
		t.Errorf("plain text should pass through, got %q", got)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Rahul.K@College.EDU "); got != "rahul.k@college.edu" {
		t.Errorf("unexpected normalization: %q", got)
	}
}

func TestIsAllowedCollegeEmail(t *testing.T) {
	if !IsAllowedCollegeEmail("student@college.edu", "college.edu") {
		t.Error("campus address should be allowed")
	}
	if IsAllowedCollegeEmail("student@gmail.com", "college.edu") {
		t.Error("outside address should be rejected")
	}
	if !IsAllowedCollegeEmail("Admin.Office@COLLEGE.EDU", "college.edu") {
		t.Error("domain check should be case-insensitive")
	}
}
