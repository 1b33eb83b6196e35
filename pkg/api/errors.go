package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches a StatusError whose code is 404.
var ErrNotFound = errors.New("api: not found")

// ErrNoID is a 2xx write response whose entity carries no id.
var ErrNoID = errors.New("response has no id")

// StatusError is a non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	// Message is the backend's {"message": ...} text, or the raw body.
	Message string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Code)
	}
	return fmt.Sprintf("api: %s %s: %d %s", e.Method, e.Path, e.Code, msg)
}

// Is lets errors.Is(err, ErrNotFound) hold for 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// TransportError is a request that never produced a response, or whose body
// could not be decoded.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
