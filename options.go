package wpbridge

import (
	"net/http"

	"github.com/hashicorp/go-hclog"
)

// Option customizes a Client during construction. Any of the four capability
// implementations can be swapped without touching the executor.
type Option func(*Client)

// WithLogger sets the structured logger. Default is a no-op logger.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithValidator replaces the default ParameterValidator.
func WithValidator(v ParameterValidator) Option {
	return func(c *Client) {
		c.validator = v
	}
}

// WithErrorHandler replaces the default ErrorHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *Client) {
		c.handler = h
	}
}

// WithAuthProvider replaces the provider that New would derive from the
// supplied credentials.
func WithAuthProvider(p AuthProvider) Option {
	return func(c *Client) {
		c.auth = p
	}
}

// WithMetrics enables Prometheus metrics on the default registerer.
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector attaches a pre-built collector.
func WithMetricsCollector(mc *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = mc
	}
}
