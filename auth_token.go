// auth_token.go
// -------------
// TokenProvider implements the stateful JWT scheme: it exchanges a username
// and password for a short-lived bearer token at a token-issuance endpoint
// (the wp-jwt-auth plugin's /jwt-auth/v1/token by default), refreshes it
// before expiry, and falls back to a full re-authentication when the refresh
// endpoint is unsupported.
//
// Token state is the only mutable shared state in the scheme. Every read and
// write goes through p.mu so concurrent 401-triggered recoveries serialize;
// a caller that acquires the lock right after another caller's successful
// refresh reuses the fresh token instead of issuing a redundant exchange.
package wpbridge

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/tidwall/gjson"
)

const (
	// TokenExpiryBuffer is subtracted from the expiry when deciding
	// whether a token still counts as valid.
	TokenExpiryBuffer = 5 * time.Minute

	// DefaultTokenLifetime applies when the issuance response carries no
	// explicit lifetime and the token itself has no exp claim.
	DefaultTokenLifetime = 24 * time.Hour
)

type TokenProvider struct {
	creds      JWTCredentials
	endpoint   string // ".../jwt-auth/v1", no trailing slash
	httpClient *http.Client
	logger     hclog.Logger
	now        func() time.Time

	mu          sync.Mutex
	token       string
	expiresAt   time.Time
	lastAttempt time.Time
	lastSuccess time.Time
}

// NewTokenProvider builds the provider. The token endpoint defaults to the
// wp-jwt-auth location under the configured base URL; creds.TokenEndpoint
// overrides it.
func NewTokenProvider(cfg Config, creds JWTCredentials, hc *http.Client, logger hclog.Logger) *TokenProvider {
	endpoint := creds.TokenEndpoint
	if endpoint == "" {
		endpoint = strings.TrimRight(cfg.BaseURL, "/") + "/jwt-auth/v1"
	}
	if hc == nil {
		hc = &http.Client{}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &TokenProvider{
		creds:      creds,
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: hc,
		logger:     logger,
		now:        time.Now,
	}
}

func (p *TokenProvider) Method() AuthMethod { return MethodJWT }

// AuthHeaders returns a bearer header when a token is held and an empty map
// otherwise. It never triggers a network call; acquisition goes through
// Authenticate or the 401 recovery path.
func (p *TokenProvider) AuthHeaders(_ context.Context) (map[string]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.token == "" {
		return map[string]string{}, nil
	}
	return map[string]string{"Authorization": "Bearer " + p.token}, nil
}

// Authenticate exchanges the configured username and password for a token.
func (p *TokenProvider) Authenticate(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.acquireLocked(ctx)
}

// EnsureValidToken acquires a token if none is held, or refreshes one that
// is inside the expiry buffer. A no-op for a healthy token.
func (p *TokenProvider) EnsureValidToken(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.token != "" && !p.expiredLocked() {
		return nil
	}
	if p.token == "" {
		return p.acquireLocked(ctx)
	}
	return p.refreshLocked(ctx)
}

// RefreshToken refreshes the current token, falling back to a full
// re-authentication when the refresh endpoint is unsupported or fails.
func (p *TokenProvider) RefreshToken(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refreshLocked(ctx)
}

// Invalidate clears the token. The server-side revocation call is
// best-effort: local state is cleared regardless of its outcome.
func (p *TokenProvider) Invalidate(ctx context.Context) error {
	p.mu.Lock()
	token := p.token
	p.token = ""
	p.expiresAt = time.Time{}
	p.mu.Unlock()

	if token == "" {
		return nil
	}
	headers := map[string]string{"Authorization": "Bearer " + token}
	if _, err := p.post(ctx, p.endpoint+"/token/revoke", nil, headers); err != nil {
		p.logger.Debug("token revocation call failed, local state already cleared", "error", err)
	}
	return nil
}

// Logout is an alias for Invalidate.
func (p *TokenProvider) Logout(ctx context.Context) error { return p.Invalidate(ctx) }

// IsTokenExpired reports whether the held token is absent or inside the
// expiry buffer. Pure predicate; no side effects.
func (p *TokenProvider) IsTokenExpired() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expiredLocked()
}

func (p *TokenProvider) IsAuthenticated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token != "" && !p.expiredLocked()
}

// HandleAuthFailure re-authenticates after an observed 401/403. Concurrent
// failures coalesce: whoever wins the lock performs the exchange, and late
// arrivals whose failure predates that fresh token skip straight to replay.
func (p *TokenProvider) HandleAuthFailure(ctx context.Context, cause error) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && !p.expiredLocked() && p.now().Sub(p.lastSuccess) < time.Second {
		// Another caller refreshed while we waited on the lock.
		return true, nil
	}

	p.logger.Debug("auth failure observed, re-authenticating", "cause", cause)
	if p.token != "" {
		if err := p.refreshLocked(ctx); err != nil {
			return false, err
		}
		return true, nil
	}
	if err := p.acquireLocked(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (p *TokenProvider) Status() AuthStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return AuthStatus{
		Authenticated:   p.token != "" && !p.expiredLocked(),
		Method:          MethodJWT,
		LastAuthAttempt: p.lastAttempt,
		TokenExpiry:     p.expiresAt,
	}
}

// expiredLocked: expiresAt absent, or now >= expiresAt - buffer. Callers
// hold p.mu.
func (p *TokenProvider) expiredLocked() bool {
	if p.expiresAt.IsZero() {
		return true
	}
	return !p.now().Before(p.expiresAt.Add(-TokenExpiryBuffer))
}

// acquireLocked issues the credential-exchange call. Any failure clears the
// token state. Callers hold p.mu.
func (p *TokenProvider) acquireLocked(ctx context.Context) error {
	p.lastAttempt = p.now()

	payload, err := json.Marshal(map[string]string{
		"username": p.creds.Username,
		"password": p.creds.Password,
	})
	if err != nil {
		return err
	}

	resp, err := p.post(ctx, p.endpoint+"/token", payload, nil)
	if err != nil {
		p.clearLocked()
		return &AuthenticationError{Method: MethodJWT, Message: "token request failed", Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.clearLocked()
		_, message := parseErrorBody(resp.Data)
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &AuthenticationError{
			Method:  MethodJWT,
			Message: "token endpoint returned " + http.StatusText(resp.StatusCode) + ": " + message,
		}
	}

	return p.storeTokenLocked(resp.Data)
}

// refreshLocked tries the dedicated refresh endpoint with the current token
// and falls back to a full re-authentication when that is unsupported or
// fails. A failed fallback clears the token and reports both causes.
// Callers hold p.mu.
func (p *TokenProvider) refreshLocked(ctx context.Context) error {
	p.lastAttempt = p.now()

	headers := map[string]string{"Authorization": "Bearer " + p.token}
	resp, err := p.post(ctx, p.endpoint+"/token/refresh", nil, headers)
	if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if serr := p.storeTokenLocked(resp.Data); serr == nil {
			p.logger.Debug("token refreshed", "expires_at", p.expiresAt)
			return nil
		}
	}

	var refreshErr error
	switch {
	case err != nil:
		refreshErr = err
	case refreshUnsupported(resp):
		p.logger.Debug("refresh endpoint unsupported, re-authenticating", "status", resp.StatusCode)
	default:
		_, message := parseErrorBody(resp.Data)
		refreshErr = &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if aerr := p.acquireLocked(ctx); aerr != nil {
		p.clearLocked()
		cause := aerr
		if refreshErr != nil {
			cause = multierror.Append(refreshErr, aerr)
		}
		return &AuthenticationError{Method: MethodJWT, Message: "token refresh failed", Cause: cause}
	}
	return nil
}

// storeTokenLocked extracts the token and its expiry from an issuance or
// refresh response body. Expiry resolution order: explicit expires_in field,
// the token's own exp claim, then DefaultTokenLifetime.
func (p *TokenProvider) storeTokenLocked(data []byte) error {
	token := gjson.GetBytes(data, "token").String()
	if token == "" {
		p.clearLocked()
		return &AuthenticationError{Method: MethodJWT, Message: "token missing from issuance response"}
	}

	expiry := time.Time{}
	if expiresIn := gjson.GetBytes(data, "expires_in"); expiresIn.Exists() && expiresIn.Int() > 0 {
		expiry = p.now().Add(time.Duration(expiresIn.Int()) * time.Second)
	} else {
		var claims jwt.RegisteredClaims
		if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err == nil && claims.ExpiresAt != nil {
			expiry = claims.ExpiresAt.Time
		}
	}
	if expiry.IsZero() {
		expiry = p.now().Add(DefaultTokenLifetime)
	}

	p.token = token
	p.expiresAt = expiry
	p.lastSuccess = p.now()
	return nil
}

func (p *TokenProvider) clearLocked() {
	p.token = ""
	p.expiresAt = time.Time{}
}

// refreshUnsupported reports whether the refresh response means "no such
// endpoint" rather than "refresh rejected".
func refreshUnsupported(resp *Response) bool {
	switch resp.StatusCode {
	case http.StatusNotFound, http.StatusMethodNotAllowed, http.StatusNotImplemented:
		return true
	}
	return gjson.GetBytes(resp.Data, "code").String() == "rest_no_route"
}

// post performs one HTTP call against the token endpoints.
func (p *TokenProvider) post(ctx context.Context, url string, body []byte, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: resp.StatusCode, Headers: resp.Header, Data: data}, nil
}
