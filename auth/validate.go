package auth

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidateUsername trims and checks a username against the account rules:
// 3-30 characters, letters/digits/underscore only.
func ValidateUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", fmt.Errorf("Username is required")
	}
	if len(username) < 3 || len(username) > 30 {
		return "", fmt.Errorf("Username must be between 3 and 30 characters")
	}
	if !usernameRe.MatchString(username) {
		return "", fmt.Errorf("Username can only contain letters, numbers, and underscores")
	}
	return username, nil
}

// ValidatePassword enforces the strength rules: 8-100 characters with at
// least one letter and one digit.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("Password is required")
	}
	if len(password) < 8 {
		return fmt.Errorf("Password must be at least 8 characters long")
	}
	if len(password) > 100 {
		return fmt.Errorf("Password is too long")
	}

	var hasLetter, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsLetter(c):
			hasLetter = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("Password must contain at least one letter and one number")
	}
	return nil
}
