package service

import "errors"

var (
	ErrNotLoggedIn          = errors.New("not logged in")
	ErrPendingProject       = errors.New("project is pending approval")
	ErrProjectClosed        = errors.New("project is closed")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrDayBlocked           = errors.New("day is blocked")
	ErrDuplicateEntry       = errors.New("duplicate entry")
)

// ValidationError is a user-facing rejection of form input. Message is shown
// as-is; Err, when set, lets callers match the rejection with errors.Is.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

func invalidAs(sentinel error, msg string) error {
	return &ValidationError{Message: msg, Err: sentinel}
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
