package user

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	maxNameLen     = 50
	minPasswordLen = 8
	maxPasswordLen = 12
	specialChars   = "#@$&"
)

var (
	emailRe   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@gmail\.com$`)
	contactRe = regexp.MustCompile(`^\d{10}$`)
)

// ValidEmail reports whether s is a well-formed @gmail.com address.
// Other domains are rejected.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidContact reports whether s is exactly 10 digits.
func ValidContact(s string) bool {
	return contactRe.MatchString(s)
}

// ValidPassword reports whether p is 8-12 characters long and contains an
// uppercase letter, a lowercase letter, a digit and one of # @ $ &.
// RE2 has no lookaheads, so the classes are checked with a rune scan.
func ValidPassword(p string) bool {
	if len(p) < minPasswordLen || len(p) > maxPasswordLen {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}
	return upper && lower && digit && special
}

func validName(s string) bool {
	return s != "" && len(s) <= maxNameLen
}
