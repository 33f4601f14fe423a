// interfaces.go
// -------------
// The four capability interfaces consumed by the RequestExecutor. The
// executor never depends on a concrete implementation of any of them; New
// wires defaults, and every one can be replaced through an Option (for
// example an ErrorHandler test double that captures instead of logging).
package wpbridge

import (
	"context"
	"time"
)

// ConfigProvider gives the executor read-only access to client settings.
type ConfigProvider interface {
	BaseURL() string
	UserAgent() string
	RequestTimeout() time.Duration
	RequestsPerMinute() int
	MaxRetries() int
	RetryBackoffBase() time.Duration
	RetryBackoffCap() time.Duration
}

// ParameterValidator performs pure input checks before any network activity.
type ParameterValidator interface {
	// ValidateRequest checks method and path; a non-nil result is a
	// *ValidationError.
	ValidateRequest(method, path string) error
	// ValidateNonEmpty checks a single named field.
	ValidateNonEmpty(field, value string) error
}

// ErrorHandler classifies failures into the package's error taxonomy and
// reports them.
type ErrorHandler interface {
	// HandleResponse converts a non-2xx response into a typed error,
	// logging it in the process. requestID correlates log lines with the
	// returned error. The response body may be consulted for a
	// machine-readable code and a human message.
	HandleResponse(requestID string, resp *Response) error
	// HandleError logs err and returns it (possibly wrapped) so callers
	// can surface exactly what was reported.
	HandleError(requestID string, err error) error
}

// AuthProvider produces authentication headers for outbound requests and
// manages the credential lifecycle for its scheme.
type AuthProvider interface {
	Method() AuthMethod

	// AuthHeaders returns the headers to attach to a request. An empty
	// map means "not authenticated"; stateful schemes return it when no
	// valid token is held.
	AuthHeaders(ctx context.Context) (map[string]string, error)

	// Authenticate establishes or re-establishes credentials. Static
	// schemes only re-validate their fields.
	Authenticate(ctx context.Context) error

	IsAuthenticated() bool

	// HandleAuthFailure attempts to recover from an observed 401/403.
	// It reports whether recovery succeeded and the request is worth
	// replaying.
	HandleAuthFailure(ctx context.Context, cause error) (bool, error)

	// Status returns a read-only snapshot of authentication state.
	Status() AuthStatus
}

// AuthStatus is a derived snapshot, recomputed on demand.
type AuthStatus struct {
	Authenticated   bool
	Method          AuthMethod
	LastAuthAttempt time.Time // zero if never attempted
	TokenExpiry     time.Time // zero for stateless schemes
}
