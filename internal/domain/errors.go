package domain

import (
	"errors"
	"net/http"
	"time"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// CircularReferenceError indicates a rejected re-parenting that would
	// create a cycle in the document tree
	CircularReferenceError struct {
		Message string
	}

	// ServiceUnavailableError indicates a downstream dependency
	// (storage, identity keys, AI endpoint) is unreachable or erroring
	ServiceUnavailableError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string           { return e.Message }
func (e *ValidationError) Error() string         { return e.Message }
func (e *UnauthorizedError) Error() string       { return e.Message }
func (e *CircularReferenceError) Error() string  { return e.Message }
func (e *ServiceUnavailableError) Error() string { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int           { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int         { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int       { return http.StatusUnauthorized }
func (e *CircularReferenceError) StatusCode() int  { return http.StatusConflict }
func (e *ServiceUnavailableError) StatusCode() int { return http.StatusServiceUnavailable }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrCircularReference  = errors.New("circular reference")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// Is allows errors.Is() to match the typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool          { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool        { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool      { return target == ErrUnauthorized }
func (e *CircularReferenceError) Is(target error) bool { return target == ErrCircularReference }
func (e *ServiceUnavailableError) Is(target error) bool {
	return target == ErrServiceUnavailable
}

// RateLimitedError indicates the caller exhausted a token bucket.
// RetryAfter reports how long until the bucket refills enough for one call.
type RateLimitedError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string   { return e.Message }
func (e *RateLimitedError) StatusCode() int { return http.StatusTooManyRequests }
