package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard error types
var (
	ErrConfiguration = errors.New("configuration error")
	ErrTransport     = errors.New("transport error")
	ErrDecode        = errors.New("decode error")
	ErrNoSuchMethod  = errors.New("no such method")
	ErrValidation    = errors.New("validation error")
)

// WrapError wraps an error with a standard error type.
// Both errType and err stay reachable through errors.Is / errors.As.
func WrapError(err error, errType error, message string) error {
	return fmt.Errorf("%w: %s: %w", errType, message, err)
}

// HTTPError is returned for non-success HTTP responses
type HTTPError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *HTTPError) Error() string {
	if e.Status != "" {
		return "HTTP " + e.Status
	}
	return fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Is makes an HTTPError match ErrTransport
func (e *HTTPError) Is(target error) bool {
	return target == ErrTransport
}

// NoSuchMethodError names a chained method the builder does not know
type NoSuchMethodError struct {
	Method string
}

func (e *NoSuchMethodError) Error() string {
	return fmt.Sprintf("method [%s] does not exist", e.Method)
}

// Is makes a NoSuchMethodError match ErrNoSuchMethod
func (e *NoSuchMethodError) Is(target error) bool {
	return target == ErrNoSuchMethod
}

// Is provides a convenience wrapper around errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As provides a convenience wrapper around errors.As
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Unwrap provides a convenience wrapper around errors.Unwrap
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
