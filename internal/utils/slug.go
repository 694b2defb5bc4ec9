package utils

import (
	"strings"
	"unicode"
)

// Slugify lowercases s and replaces non-alphanumeric runs with single dashes.
func Slugify(s string) string {
	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// EmailSlug derives a slug from the local part of an email address.
// "Jane.Doe@corp.example" becomes "jane-doe".
func EmailSlug(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	return Slugify(local)
}
