// Package validators holds the input-hygiene layer of the API: free-text
// sanitization, email shape checks, and the account password policy.
//
// Sanitization here is defense in depth, not the primary authorization
// control: every free-text field is stripped of markup-breaking characters
// and length-capped before any further processing or store access.
package validators

import (
	"regexp"
	"strings"
)

// Per-field length caps applied before any further processing.
const (
	MaxEmailLength    = 100
	MaxPasswordLength = 128
	MaxCodeLength     = 16
	// MaxTokenLength bounds raw token fields arriving in request bodies.
	// Signed credentials are well under this size.
	MaxTokenLength = 2048
)

// strippedChars are removed from every free-text field: control and
// markup-breaking characters that have no place in emails, passwords, or
// numeric codes.
const strippedChars = "<>/\\'\"`%;()&+"

var (
	emailRegexp    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigitRegexp = regexp.MustCompile(`[^0-9]`)
	// The punctuation set the password policy accepts as a symbol.
	passwordSymbolRegexp = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
	lowerRegexp          = regexp.MustCompile(`[a-z]`)
	upperRegexp          = regexp.MustCompile(`[A-Z]`)
	digitRegexp          = regexp.MustCompile(`[0-9]`)
)

// Sanitize trims surrounding whitespace, removes unsafe characters, and caps
// the result at maxLength runes. A non-positive maxLength disables capping.
func Sanitize(input string, maxLength int) string {
	sanitized := strings.TrimSpace(input)
	sanitized = strings.Map(func(r rune) rune {
		if strings.ContainsRune(strippedChars, r) {
			return -1
		}
		return r
	}, sanitized)

	if maxLength > 0 && len(sanitized) > maxLength {
		sanitized = sanitized[:maxLength]
	}

	return sanitized
}

// SanitizeNumeric sanitizes input and additionally strips every non-digit
// character. Used for submitted OTP codes.
func SanitizeNumeric(input string, maxLength int) string {
	return nonDigitRegexp.ReplaceAllString(Sanitize(input, maxLength), "")
}

// IsValidEmail reports whether email has the standard local@domain.tld
// shape. It is a format check only, not a deliverability check.
func IsValidEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// IsValidPassword enforces the account password strength policy: at least
// 8 characters including one lowercase letter, one uppercase letter, one
// digit, and one symbol from the accepted punctuation set.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	if !lowerRegexp.MatchString(password) {
		return false
	}
	if !upperRegexp.MatchString(password) {
		return false
	}
	if !digitRegexp.MatchString(password) {
		return false
	}
	if !passwordSymbolRegexp.MatchString(password) {
		return false
	}
	return true
}
