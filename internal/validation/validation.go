// Package validation contains input validation rules for account and
// profile fields.
package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"resonate/internal/models"
)

const (
	MinUsernameLen = 3
	MaxUsernameLen = 30
	MinPasswordLen = 8
	MaxBioLen      = 180
	MaxNameLen     = 60
	MaxMessageLen  = 2000
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)

// ValidateUsername checks length and the allowed character set.
func ValidateUsername(username string) error {
	if n := utf8.RuneCountInString(username); n < MinUsernameLen || n > MaxUsernameLen {
		return fmt.Errorf("username must be between %d and %d characters", MinUsernameLen, MaxUsernameLen)
	}
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username may only contain letters, digits, underscores and dots")
	}
	return nil
}

// ValidatePassword enforces a minimum length only. Composition rules are
// left to the client.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	return nil
}

// ValidateBio enforces the bio length cap.
func ValidateBio(bio string) error {
	if utf8.RuneCountInString(bio) > MaxBioLen {
		return fmt.Errorf("bio must be at most %d characters", MaxBioLen)
	}
	return nil
}

// ValidateName enforces the display name length cap.
func ValidateName(name string) error {
	if utf8.RuneCountInString(name) > MaxNameLen {
		return fmt.Errorf("name must be at most %d characters", MaxNameLen)
	}
	return nil
}

// ValidateSex checks the value against the accepted set.
func ValidateSex(s models.Sex) error {
	if !models.ValidSex(s) {
		return fmt.Errorf("sex must be one of Male, Female or Other")
	}
	return nil
}

// ValidateInterests checks every entry against the accepted set.
func ValidateInterests(interests models.SexList) error {
	for _, s := range interests {
		if !models.ValidSex(s) {
			return fmt.Errorf("interests may only contain Male, Female or Other")
		}
	}
	return nil
}

// ValidatePokeSong requires the minimum track data for a poke to make sense.
func ValidatePokeSong(t models.Track) error {
	if t.Name == "" || t.Artist == "" {
		return fmt.Errorf("song must include both name and artist")
	}
	return nil
}

// ValidateMessageText rejects empty and oversized message bodies.
func ValidateMessageText(text string) error {
	if text == "" {
		return fmt.Errorf("message text is required")
	}
	if utf8.RuneCountInString(text) > MaxMessageLen {
		return fmt.Errorf("message must be at most %d characters", MaxMessageLen)
	}
	return nil
}
