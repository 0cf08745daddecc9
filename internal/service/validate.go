package service

import (
	"regexp"
	"strings"

	"storefront/internal/apperr"
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,50}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func validateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return apperr.New(apperr.Validation,
			"Username must be 3-50 characters of letters, numbers and underscores")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 100 || !emailRe.MatchString(email) {
		return apperr.New(apperr.Validation, "Invalid email address")
	}
	return nil
}

// validatePassword enforces a minimum length of 8 with at least one
// lowercase letter, one uppercase letter, one digit and one special
// character.
func validatePassword(password string) error {
	if len(password) < 8 ||
		!strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz") ||
		!strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") ||
		!strings.ContainsAny(password, "0123456789") ||
		!strings.ContainsAny(password, "@$!%*?&#^()-_+=") {
		return apperr.New(apperr.Validation,
			"Password must be at least 8 characters and include uppercase, lowercase, number, and special character")
	}
	return nil
}
