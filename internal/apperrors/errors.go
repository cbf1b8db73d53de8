package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForeignKey indicates that a write referenced a missing parent row, or
// that a delete would orphan rows protected by a restrictive constraint.
var ErrForeignKey = errors.New("foreign key violation")

// AppError wraps an underlying error with an application-level code and message.
// Repositories wrap unexpected storage failures in an AppError with code 500;
// those form the transient class callers may retry.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that matches errors.Is(err, ErrValidation).
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// IsTransient reports whether the error is a storage/infrastructure failure the
// caller may reasonably retry, as opposed to a terminal error such as a missing
// row, a validation failure, or a constraint violation.
func IsTransient(err error) bool {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrDuplicate) || errors.Is(err, ErrForeignKey) {
		return false
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code >= 500
	}
	return false
}
