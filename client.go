// client.go
// ---------
// Client is the main entry point of the library and its composition root.
// New assembles default implementations of the four capability interfaces
// plus the scheme-appropriate AuthProvider, wires them into a
// RequestExecutor, and returns a single ready object. The executor never
// sees a concrete type; every capability can be swapped through an Option.
package wpbridge

import (
	"context"
	"net/http"

	"github.com/hashicorp/go-hclog"
)

type Client struct {
	config Config

	logger     hclog.Logger
	httpClient *http.Client
	validator  ParameterValidator
	handler    ErrorHandler
	auth       AuthProvider
	metrics    *MetricsCollector

	executor *RequestExecutor
}

// New builds a Client from a validated configuration and one credential
// configuration. Structurally invalid credentials are a fatal construction
// error; no network activity happens here.
func New(cfg Config, creds Credentials, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	c := &Client{
		config:     cfg,
		logger:     hclog.NewNullLogger(),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.validator == nil {
		c.validator = NewParameterValidator()
	}
	if c.auth == nil {
		provider, err := newAuthProvider(cfg, creds, c.httpClient, c.logger)
		if err != nil {
			return nil, err
		}
		c.auth = provider
	}
	if c.handler == nil {
		c.handler = NewErrorHandler(c.logger, c.auth.Method())
	}

	c.executor = NewRequestExecutor(
		newStaticConfig(cfg),
		c.validator,
		c.handler,
		c.auth,
		c.httpClient,
		c.logger,
	)
	c.executor.SetMetricsCollector(c.metrics)
	return c, nil
}

// newAuthProvider maps one credential shape to its provider implementation.
func newAuthProvider(cfg Config, creds Credentials, hc *http.Client, logger hclog.Logger) (AuthProvider, error) {
	if creds == nil {
		return nil, &AuthenticationError{Message: "no credentials provided"}
	}
	if err := creds.Validate(); err != nil {
		return nil, &AuthenticationError{
			Method:  creds.Method(),
			Message: "invalid credentials",
			Cause:   err,
		}
	}

	switch cr := creds.(type) {
	case AppPasswordCredentials:
		return newStaticBasicProvider(MethodAppPassword, cr.Username, cr.AppPassword), nil
	case BasicCredentials:
		return newStaticBasicProvider(MethodBasic, cr.Username, cr.Password), nil
	case APIKeyCredentials:
		return newAPIKeyProvider(cr), nil
	case CookieCredentials:
		return newCookieProvider(cr), nil
	case JWTCredentials:
		return NewTokenProvider(cfg, cr, hc, logger), nil
	default:
		return nil, &AuthenticationError{
			Method:  creds.Method(),
			Message: "unsupported credential type",
		}
	}
}

// Execute sends one request through the resilient executor.
func (c *Client) Execute(ctx context.Context, req *Request) (*Response, error) {
	return c.executor.Execute(ctx, req)
}

// Authenticate pre-flights the configured scheme: static schemes re-validate
// their fields, the token scheme acquires a token.
func (c *Client) Authenticate(ctx context.Context) error {
	return c.auth.Authenticate(ctx)
}

func (c *Client) IsAuthenticated() bool { return c.auth.IsAuthenticated() }

// AuthStatus reports connection health for display or pre-flight checks.
func (c *Client) AuthStatus() AuthStatus { return c.auth.Status() }

// Stats returns a snapshot of the cumulative request counters.
func (c *Client) Stats() Stats { return c.executor.Stats() }

// ResetStats zeroes the counters.
func (c *Client) ResetStats() { c.executor.ResetStats() }
