// error_handler.go
// ----------------
// The default ErrorHandler turns non-2xx responses into the package's typed
// errors and logs every failure it sees. WordPress error bodies look like
// {"code":"rest_post_invalid_id","message":"Invalid post ID.","data":{...}};
// the handler pulls out code and message without decoding the whole body.
package wpbridge

import (
	"fmt"
	"net/http"

	"github.com/hashicorp/go-hclog"
	"github.com/tidwall/gjson"

	"github.com/pressops/wp-bridge/internal/timeutil"
)

type defaultErrorHandler struct {
	logger hclog.Logger
	method AuthMethod
}

// NewErrorHandler returns the default ErrorHandler. method tags any
// authentication errors it produces.
func NewErrorHandler(logger hclog.Logger, method AuthMethod) ErrorHandler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &defaultErrorHandler{logger: logger, method: method}
}

func (h *defaultErrorHandler) HandleResponse(requestID string, resp *Response) error {
	code, message := parseErrorBody(resp.Data)
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	var err error
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		err = &AuthenticationError{
			Method:  h.method,
			Message: fmt.Sprintf("server rejected credentials (%d): %s", resp.StatusCode, message),
		}
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := timeutil.ParseRetryAfter(resp.Headers.Get("Retry-After"), DefaultRetryAfter)
		err = &RateLimitError{Message: message, RetryAfter: retryAfter}
	default:
		err = &APIError{
			StatusCode: resp.StatusCode,
			Code:       code,
			Message:    message,
			RequestID:  requestID,
		}
	}

	h.logger.Error("request failed",
		"request_id", requestID,
		"status", resp.StatusCode,
		"code", code,
		"message", message,
	)
	return err
}

func (h *defaultErrorHandler) HandleError(requestID string, err error) error {
	h.logger.Error("request error", "request_id", requestID, "error", err)
	return err
}

// parseErrorBody extracts the machine code and human message from a JSON
// error body. Both may be empty.
func parseErrorBody(data []byte) (code, message string) {
	if len(data) == 0 || !gjson.ValidBytes(data) {
		return "", ""
	}
	code = gjson.GetBytes(data, "code").String()
	message = gjson.GetBytes(data, "message").String()
	if message == "" {
		// Some plugins nest the message under "error".
		message = gjson.GetBytes(data, "error").String()
	}
	return code, message
}
