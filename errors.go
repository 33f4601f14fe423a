package wpbridge

import (
	"errors"
	"fmt"
	"time"
)

// TransportError wraps a connection-level failure: timeout, connection
// refused, DNS failure, reset. Always considered retryable.
type TransportError struct {
	Message   string
	Cause     error
	RequestID string
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transport error: %s: %v", e.Message, e.Cause)
	}
	return "transport error: " + e.Message
}

func (e *TransportError) Unwrap() error { return e.Cause }

// APIError is a non-2xx HTTP response from the remote API. Code carries the
// machine-readable error code from the response body (WordPress puts one in
// the "code" field) when present.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// AuthenticationError is tagged with the scheme that failed. Raised at
// provider construction for structurally invalid credentials, and at runtime
// when authentication or recovery fails.
type AuthenticationError struct {
	Method  AuthMethod
	Message string
	Cause   error
}

func (e *AuthenticationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("authentication failed (%s): %s: %v", e.Method, e.Message, e.Cause)
	}
	return fmt.Sprintf("authentication failed (%s): %s", e.Method, e.Message)
}

func (e *AuthenticationError) Unwrap() error { return e.Cause }

// RateLimitError is a 429 from the server. RetryAfter is the server's hint,
// or DefaultRetryAfter when the server sent none. The executor never retries
// these automatically; the caller decides when to come back.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: %s (retry after %s)", e.Message, e.RetryAfter)
}

// ValidationError reports malformed caller input. No network activity has
// taken place when one of these is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Message)
	}
	return "invalid parameter: " + e.Message
}

// IsRetryable reports whether err represents a transient failure that may
// succeed on re-attempt: transport errors and 5xx API errors. Auth, rate
// limit, validation, and other 4xx failures are not retryable here; auth
// failures go through the dedicated recovery path instead.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var te *TransportError
	if errors.As(err, &te) {
		return true
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode >= 500
	}
	return false
}
