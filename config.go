// config.go
// ---------
// Client-level settings. Everything the executor reads at runtime goes
// through the ConfigProvider interface so tests can substitute their own;
// staticConfig is the default implementation backed by a validated Config.
//
// There is deliberately no global state here: the rate limit, retry ceiling,
// and backoff window are all explicit per-client values.
package wpbridge

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	DefaultRequestTimeout    = 30 * time.Second
	DefaultRequestsPerMinute = 60
	DefaultMaxRetries        = 3
	DefaultRetryBackoffBase  = 1 * time.Second
	DefaultRetryBackoffCap   = 5 * time.Second

	// DefaultRetryAfter is used for 429 responses that carry no
	// Retry-After header.
	DefaultRetryAfter = 60 * time.Second
)

// Config holds client construction settings. The zero value of every field
// except BaseURL is usable; zero fields are replaced by the defaults above.
type Config struct {
	// BaseURL is the API root, e.g. "https://example.com/wp-json".
	BaseURL string

	UserAgent string

	// RequestTimeout bounds each transport attempt.
	RequestTimeout time.Duration

	// RequestsPerMinute paces outbound requests from this client
	// instance. 0 means DefaultRequestsPerMinute; negative disables
	// pacing entirely.
	RequestsPerMinute int

	MaxRetries       int
	RetryBackoffBase time.Duration
	RetryBackoffCap  time.Duration
}

// Validate checks that the config is structurally sound.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.MaxRetries, validation.Min(0)),
	)
}

// withDefaults returns a copy with zero fields filled in.
func (c Config) withDefaults() Config {
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.RequestsPerMinute == 0 {
		c.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryBackoffBase == 0 {
		c.RetryBackoffBase = DefaultRetryBackoffBase
	}
	if c.RetryBackoffCap == 0 {
		c.RetryBackoffCap = DefaultRetryBackoffCap
	}
	return c
}

// staticConfig adapts a Config value to the ConfigProvider interface.
type staticConfig struct {
	cfg Config
}

func newStaticConfig(cfg Config) *staticConfig {
	return &staticConfig{cfg: cfg.withDefaults()}
}

func (s *staticConfig) BaseURL() string                 { return s.cfg.BaseURL }
func (s *staticConfig) UserAgent() string               { return s.cfg.UserAgent }
func (s *staticConfig) RequestTimeout() time.Duration   { return s.cfg.RequestTimeout }
func (s *staticConfig) RequestsPerMinute() int          { return s.cfg.RequestsPerMinute }
func (s *staticConfig) MaxRetries() int                 { return s.cfg.MaxRetries }
func (s *staticConfig) RetryBackoffBase() time.Duration { return s.cfg.RetryBackoffBase }
func (s *staticConfig) RetryBackoffCap() time.Duration  { return s.cfg.RetryBackoffCap }
