// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	maxUsernameLen = 150
	maxEmailLen    = 254
)

var (
	hexColorRe        = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)
	usernameInvalidRe = regexp.MustCompile(`[^\w.@+-]`)
	emailRe           = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidateUsername checks if a username meets requirements. Allowed
// characters are letters, digits and the set ".@+-_".
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(username) > maxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", maxUsernameLen)
	}
	if bad := usernameInvalidRe.FindAllString(username, -1); len(bad) > 0 {
		seen := map[string]struct{}{}
		var uniq []string
		for _, s := range bad {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			uniq = append(uniq, s)
		}
		return fmt.Errorf("username contains restricted characters: %s", strings.Join(uniq, ""))
	}
	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > maxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", maxEmailLen)
	}
	return nil
}

// ValidateHexColor checks a tag color string: "#" followed by 3 or 6 hex digits.
func ValidateHexColor(color string) error {
	if !hexColorRe.MatchString(color) {
		return fmt.Errorf("value is not a HEX color")
	}
	return nil
}

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	hasLetter := false
	hasDigit := false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain at least one letter and one digit")
	}
	return nil
}
