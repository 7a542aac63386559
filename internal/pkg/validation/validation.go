// Package validation holds the shared input-format checks.
package validation

import (
	"regexp"
	"unicode"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// telephoneRe accepts an optional +country prefix followed by 8 to 15
// digits, with spaces allowed between groups.
var telephoneRe = regexp.MustCompile(`^\+?[0-9][0-9 ]{6,17}[0-9]$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func IsValidTelephone(telephone string) bool {
	return telephoneRe.MatchString(telephone)
}

// IsValidPassword requires at least 8 characters with at least one letter,
// one digit and one special character.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit, hasSpecial := false, false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	return hasLetter && hasDigit && hasSpecial
}
