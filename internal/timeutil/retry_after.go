// internal/timeutil/retry_after.go
// --------------------------------
// Helpers for interpreting server-supplied retry hints. A Retry-After header
// is either a delay in whole seconds ("30") or an HTTP-date
// ("Wed, 21 Oct 2026 07:28:00 GMT"); both forms appear in the wild.
package timeutil

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ParseRetryAfter converts a Retry-After header value into a duration,
// falling back to def when the value is missing or unparseable. HTTP-dates
// in the past yield def as well.
func ParseRetryAfter(value string, def time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}

	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return def
		}
		return time.Duration(secs) * time.Second
	}

	if t, err := http.ParseTime(value); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}

	return def
}
