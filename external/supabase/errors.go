package supabase

import (
	"context"
	"fmt"
	"net/http"

	crerr "github.com/cockroachdb/errors"
)

// ErrUnavailable is returned while the circuit breaker rejects calls.
var ErrUnavailable = crerr.New("supabase is temporarily unavailable")

var errSupabaseTransient = crerr.New("supabase transient failure")

// HTTPError is a non-2xx response. Message carries the PostgREST error message when the body
// has one, and "HTTP error! status: N" otherwise.
type HTTPError struct {
	Method     string
	StatusCode int
	Code       string
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Transient reports whether the status points at the server rather than the request.
func (e *HTTPError) Transient() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

func newStatusError(method string, status int) *HTTPError {
	return &HTTPError{
		Method:     method,
		StatusCode: status,
		Message:    fmt.Sprintf("HTTP error! status: %d", status),
	}
}

// NetworkError is a failure before any HTTP status was received.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	// The caller gave up; the dependency may be healthy.
	if crerr.Is(err, context.Canceled) {
		return false
	}
	if crerr.Is(err, errSupabaseTransient) {
		return true
	}
	var netErr *NetworkError
	if crerr.As(err, &netErr) {
		return true
	}
	var httpErr *HTTPError
	if crerr.As(err, &httpErr) {
		return httpErr.Transient()
	}
	return false
}
