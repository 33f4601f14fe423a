package wpbridge

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Request describes one API call. Path is relative to the configured base
// URL ("/wp/v2/posts"). Headers set here take precedence over both the
// client defaults and the auth provider's headers.
type Request struct {
	Method  string
	Path    string
	Body    []byte
	Headers map[string]string

	// Timeout overrides the client's per-attempt timeout when > 0.
	Timeout time.Duration

	// MaxRetries overrides the client's retry ceiling when non-nil.
	MaxRetries *int
}

// Response is the outcome of a successful (2xx) call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Data       []byte
}

// DecodeJSON unmarshals the response body into v.
func (r *Response) DecodeJSON(v interface{}) error {
	return json.Unmarshal(r.Data, v)
}

// ExecuteJSON runs req through the client and decodes the 2xx body into T.
func ExecuteJSON[T any](ctx context.Context, c *Client, req *Request) (T, error) {
	var out T
	resp, err := c.Execute(ctx, req)
	if err != nil {
		return out, err
	}
	if err := resp.DecodeJSON(&out); err != nil {
		return out, err
	}
	return out, nil
}
