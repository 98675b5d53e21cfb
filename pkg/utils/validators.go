package utils

import (
	"regexp"
	"strings"
)

var phoneNumberRe = regexp.MustCompile(`^\+?1?\d{9,15}$`)

// IsValidPhoneNumber accepts an optional leading '+' and 9 to 15 digits.
func IsValidPhoneNumber(s string) bool {
	return phoneNumberRe.MatchString(s)
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
