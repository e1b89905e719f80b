package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/julianstephens/flowplanr/internal/utils"
)

var (
	ErrEmptyEntry    = errors.New("entry is empty: fill in at least one field")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// ValidateEntryDate accepts only YYYY-MM-DD calendar dates.
func ValidateEntryDate(date string) error {
	if !utils.ValidateDateFormat(date) {
		return fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, date)
	}
	return nil
}

// NormalizeEmail trims and lower-cases an address and checks its syntax.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return email, nil
}

// ValidatePassword only rejects blank passwords; there is no strength policy.
func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	return nil
}
