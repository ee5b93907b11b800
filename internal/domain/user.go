package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID     = errors.New("user ID cannot be empty")
	ErrEmptyUsername   = errors.New("username cannot be empty")
	ErrUsernameTooLong = errors.New("username must be at most 64 characters long")
	ErrInvalidUsername = errors.New("username may only contain letters, digits, '.', '-' and '_'")
)

// MaxUsernameLength bounds the display name stored for a user.
const MaxUsernameLength = 64

// User is the identity on whose behalf task operations run.
// Credentials live outside this service; Username is a display name used in logs.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser creates a new User with the given username.
// It generates a new UUID for the user ID and sets the creation timestamp.
// Returns an error if validation fails.
func NewUser(username string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrEmptyUserID)
	}

	if u.Username == "" {
		return NewValidationError("username", "cannot be empty", ErrEmptyUsername)
	}

	if len(u.Username) > MaxUsernameLength {
		return NewValidationError("username", "is too long", ErrUsernameTooLong)
	}

	if !validateUsernameFormat(u.Username) {
		return NewValidationError("username", "has invalid characters", ErrInvalidUsername)
	}

	return nil
}

// validateUsernameFormat accepts ASCII letters, digits and the separators . - _
func validateUsernameFormat(username string) bool {
	for _, char := range username {
		switch {
		case char >= 'a' && char <= 'z':
		case char >= 'A' && char <= 'Z':
		case char >= '0' && char <= '9':
		case char == '.', char == '-', char == '_':
		default:
			return false
		}
	}
	return true
}
