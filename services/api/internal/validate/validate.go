// Package validate holds input validation for the client-facing forms.
// Phone numbers follow the Brazilian mask (99) 99999-9999.
package validate

import (
	"regexp"
	"strings"
)

var (
	phoneRe = regexp.MustCompile(`^\(\d{2}\)\s?\d{5}-\d{4}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// FormatPhone strips non-digits and applies the (99) 99999-9999 mask,
// truncating anything past eleven digits.
func FormatPhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 11 {
		digits = digits[:11]
	}

	switch {
	case len(digits) == 0:
		return ""
	case len(digits) <= 2:
		return "(" + digits
	case len(digits) <= 7:
		return "(" + digits[:2] + ") " + digits[2:]
	default:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	}
}

func ValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// ValidEmail accepts the empty string; email is optional on clients.
func ValidEmail(email string) bool {
	if email == "" {
		return true
	}
	return emailRe.MatchString(email)
}
