package users

import (
	"fmt"
	"unicode/utf8"

	"github.com/MrSnakeDoc/homedeck/internal/domain"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// ValidateCredentials checks the shape of a username/password pair before it
// reaches the directory.
func ValidateCredentials(username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(username) < MinUsernameLength {
		return fmt.Errorf("%w: username must be at least %d characters", domain.ErrValidation, MinUsernameLength)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, MinPasswordLength)
	}
	return nil
}
