package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a recoverable, user-facing failure.
type Kind string

const (
	Validation    Kind = "validation_error"
	NotFound      Kind = "not_found"
	Forbidden     Kind = "forbidden"
	InvalidState  Kind = "invalid_state"
	EmptyCheckout Kind = "empty_checkout"
)

// Error is the structured error surfaced to API clients. Storage-layer
// failures are not wrapped in it; those stay plain errors and map to 500.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error {
	return New(Validation, format, args...)
}

func NotFoundf(format string, args ...any) *Error {
	return New(NotFound, format, args...)
}

func Forbiddenf(format string, args ...any) *Error {
	return New(Forbidden, format, args...)
}

func InvalidStatef(format string, args ...any) *Error {
	return New(InvalidState, format, args...)
}

// As unwraps err into an *Error if it is one.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	if e, ok := As(err); ok {
		return e.Kind == kind
	}
	return false
}

// HTTPStatus maps an error kind to its response status code.
func HTTPStatus(err error) int {
	e, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case Validation, EmptyCheckout:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Forbidden:
		return http.StatusForbidden
	case InvalidState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
