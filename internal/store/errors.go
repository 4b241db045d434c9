package store

import (
	"fmt"
	"net/http"
)

// Error is a domain error with an HTTP status code.
type Error struct {
	Code    int    // HTTP status code
	Message string // User-facing message
	Err     error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPCode returns the HTTP status code associated with this error.
func (e *Error) HTTPCode() int { return e.Code }

// WithMessage returns a new error with a custom message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{
		Code:    e.Code,
		Message: msg,
		Err:     e.Err,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// Is reports whether target matches this error by status code, so
// sentinel derivatives created via WithMessage/WithCause still match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors.
var (
	ErrNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "resource not found",
	}

	ErrInvalidInput = &Error{
		Code:    http.StatusBadRequest,
		Message: "invalid input",
	}

	// ErrStorage marks the durable medium as unavailable or corrupted.
	// It is distinct from ErrNotFound: a record that fails to parse is
	// a storage failure, never "no data exists".
	ErrStorage = &Error{
		Code:    http.StatusInternalServerError,
		Message: "storage failure",
	}
)

// Errors for specific missing records.
var (
	// ErrCommentNotFound is returned when a referenced comment id does
	// not exist at mutation time.
	ErrCommentNotFound = ErrNotFound.WithMessage("comment not found")

	// ErrReplyNotFound is returned when a referenced reply id does not
	// exist at mutation time.
	ErrReplyNotFound = ErrNotFound.WithMessage("reply not found")
)
