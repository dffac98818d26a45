package domain

import (
	"errors"
	"net/http"
)

// ErrNotFound marks a lookup that matched nothing.
var ErrNotFound = errors.New("not found")

// Error is a failure that carries the HTTP status it should surface with.
// A zero Status means 500.
type Error struct {
	Status  int
	Message string
	Err     error
}

// NewError creates an Error with the given status and message.
func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// NotFound creates a 404 Error wrapping ErrNotFound.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusOf returns the status carried by err, defaulting to 500.
func StatusOf(err error) int {
	var de *Error
	if errors.As(err, &de) && de.Status != 0 {
		return de.Status
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// MessageOf returns the message a caller should see for err.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
