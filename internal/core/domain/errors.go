package domain

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrEmailRequired        = errors.New("email required")
	ErrForbidden            = errors.New("forbidden: admin access required")
	ErrImmutableField       = errors.New("email and isAdmin cannot be changed through this endpoint")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrMessageNotFound      = errors.New("message not found")
	ErrGuardNotFound        = errors.New("guard not found")
	ErrTooManyRequests      = errors.New("too many submissions, try again later")
	ErrWriteNotAcknowledged = errors.New("write was not acknowledged by the store")
)

// ValidationError carries a caller-facing message for malformed input.
// It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid returns a ValidationError with the given message.
func Invalid(msg string) error {
	return &ValidationError{Msg: msg}
}
