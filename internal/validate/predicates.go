// Package validate implements field-level validation of tabular data:
// a small library of format predicates and a rule engine that applies
// configured column rules to every row of a table, producing a flat list
// of error records.
package validate

import (
	"regexp"
	"strings"
)

var (
	// emailRegex matches local-part@domain.tld where local-part and domain
	// are runs of word characters, dots, and hyphens.
	emailRegex = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

	// phoneRegex matches an optional leading +, an optional country code 1,
	// then 9 to 15 digits.
	phoneRegex = regexp.MustCompile(`^\+?1?\d{9,15}$`)
)

// IsValidEmail reports whether v looks like an email address.
func IsValidEmail(v string) bool {
	return emailRegex.MatchString(v)
}

// IsValidPhone reports whether v looks like a phone number.
func IsValidPhone(v string) bool {
	return phoneRegex.MatchString(v)
}

// IsNumericString reports whether v, with at most one dot removed,
// consists entirely of digits. "12.5" and "125" qualify; "-5" and
// "1.2.3" do not. Signs, exponents, and whitespace are out of contract.
func IsNumericString(v string) bool {
	s := strings.Replace(v, ".", "", 1)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
