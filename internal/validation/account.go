// Package validation holds input validation rules for user-supplied fields.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 30
	maxPasswordLen = 72 // bcrypt truncates input beyond 72 bytes
	maxEmailLen    = 254
)

// ValidateUsername validates username format.
func ValidateUsername(username string) error {
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return fmt.Errorf("username must be %d-%d characters", minUsernameLen, maxUsernameLen)
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return fmt.Errorf("username may only contain letters, numbers, underscores, and hyphens")
		}
	}
	first := username[0]
	last := username[len(username)-1]
	if first == '_' || first == '-' || last == '_' || last == '-' {
		return fmt.Errorf("username cannot start or end with an underscore or hyphen")
	}
	return nil
}

// ValidateEmail validates email format and length.
func ValidateEmail(email string) error {
	if len(email) > maxEmailLen {
		return fmt.Errorf("email must be at most %d characters", maxEmailLen)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email address")
	}
	if strings.HasSuffix(email, ".") || !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address")
	}
	domain := email[strings.LastIndex(email, "@")+1:]
	if !strings.Contains(domain, ".") {
		return fmt.Errorf("email domain must contain a dot")
	}
	return nil
}

// ValidatePassword bounds password length. No strength rules are imposed at
// signup; any non-empty password up to the bcrypt input limit is accepted.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("password must be at most %d characters", maxPasswordLen)
	}
	return nil
}
