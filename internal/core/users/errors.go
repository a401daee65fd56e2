package users

import (
	"errors"
	"fmt"
)

// Sentinel errors for common user operations
var (
	// ErrUserNotFound is returned when a user lookup finds no matching record
	ErrUserNotFound = errors.New("user not found")

	// ErrHandleAlreadyTaken is returned when signing up with a handle that already exists
	ErrHandleAlreadyTaken = errors.New("handle already taken")

	// ErrInvalidCredentials is returned for an unknown handle or a wrong password.
	// The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnknownAuthor is returned when a write names a user that has no record,
	// e.g. a still-valid token issued before the store was reset
	ErrUnknownAuthor = errors.New("author does not exist")
)

// ValidationError represents a missing or malformed input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// DanglingAuthorError is returned when a post or comment references a user
// that no longer resolves. Views are never rendered without author data.
type DanglingAuthorError struct {
	UserID string
}

func (e *DanglingAuthorError) Error() string {
	return fmt.Sprintf("author %q referenced but not found", e.UserID)
}

// IsDanglingAuthor checks if error is a dangling author reference
func IsDanglingAuthor(err error) bool {
	var dangling *DanglingAuthorError
	return errors.As(err, &dangling)
}
