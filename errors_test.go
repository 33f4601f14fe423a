package wpbridge

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"transport", &TransportError{Message: "dial", Cause: errors.New("refused")}, true},
		{"wrapped transport", fmt.Errorf("execute: %w", &TransportError{Message: "dial"}), true},
		{"api 500", &APIError{StatusCode: 500}, true},
		{"api 503", &APIError{StatusCode: 503}, true},
		{"api 404", &APIError{StatusCode: 404}, false},
		{"api 400", &APIError{StatusCode: 400}, false},
		{"auth", &AuthenticationError{Method: MethodJWT, Message: "rejected"}, false},
		{"rate limit", &RateLimitError{RetryAfter: time.Minute}, false},
		{"validation", &ValidationError{Field: "method"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsRetryable(tc.err))
		})
	}
}

func TestErrorMessagesCarryMachineDetails(t *testing.T) {
	apiErr := &APIError{StatusCode: 404, Code: "rest_post_invalid_id", Message: "Invalid post ID."}
	assert.Contains(t, apiErr.Error(), "404")
	assert.Contains(t, apiErr.Error(), "rest_post_invalid_id")

	authErr := &AuthenticationError{Method: MethodAppPassword, Message: "rejected"}
	assert.Contains(t, authErr.Error(), string(MethodAppPassword))

	rlErr := &RateLimitError{Message: "slow down", RetryAfter: 30 * time.Second}
	assert.Contains(t, rlErr.Error(), "30s")

	vErr := &ValidationError{Field: "path", Message: "cannot be blank"}
	assert.Contains(t, vErr.Error(), "path")
}

func TestErrorUnwrapping(t *testing.T) {
	cause := errors.New("connection reset")
	terr := &TransportError{Message: "GET /wp/v2/posts", Cause: cause}
	assert.ErrorIs(t, terr, cause)

	authErr := &AuthenticationError{Method: MethodJWT, Message: "refresh failed", Cause: cause}
	assert.ErrorIs(t, authErr, cause)
}
