// auth_static.go
// --------------
// Static-header authentication schemes. Each provider's AuthHeaders is a
// pure function of its credentials: no network calls, no mutable state.
// Authenticate only re-checks that the required fields are present, and
// HandleAuthFailure cannot recover because there is nothing to refresh.
package wpbridge

import (
	"context"
	"encoding/base64"
)

const defaultAPIKeyHeader = "X-API-Key"

// staticBasicProvider serves both MethodBasic and MethodAppPassword;
// WordPress accepts application passwords through the same Basic header.
type staticBasicProvider struct {
	method   AuthMethod
	username string
	secret   string
}

func newStaticBasicProvider(method AuthMethod, username, secret string) *staticBasicProvider {
	return &staticBasicProvider{method: method, username: username, secret: secret}
}

func (p *staticBasicProvider) Method() AuthMethod { return p.method }

func (p *staticBasicProvider) AuthHeaders(_ context.Context) (map[string]string, error) {
	if p.username == "" || p.secret == "" {
		return nil, &AuthenticationError{Method: p.method, Message: "username and secret are required"}
	}
	token := base64.StdEncoding.EncodeToString([]byte(p.username + ":" + p.secret))
	return map[string]string{"Authorization": "Basic " + token}, nil
}

func (p *staticBasicProvider) Authenticate(_ context.Context) error {
	if p.username == "" || p.secret == "" {
		return &AuthenticationError{Method: p.method, Message: "username and secret are required"}
	}
	return nil
}

func (p *staticBasicProvider) IsAuthenticated() bool {
	return p.username != "" && p.secret != ""
}

func (p *staticBasicProvider) HandleAuthFailure(_ context.Context, cause error) (bool, error) {
	// Static credentials cannot be refreshed; surface the failure.
	return false, &AuthenticationError{Method: p.method, Message: "credentials rejected", Cause: cause}
}

func (p *staticBasicProvider) Status() AuthStatus {
	return AuthStatus{Authenticated: p.IsAuthenticated(), Method: p.method}
}

type apiKeyProvider struct {
	key    string
	header string
}

func newAPIKeyProvider(creds APIKeyCredentials) *apiKeyProvider {
	header := creds.Header
	if header == "" {
		header = defaultAPIKeyHeader
	}
	return &apiKeyProvider{key: creds.Key, header: header}
}

func (p *apiKeyProvider) Method() AuthMethod { return MethodAPIKey }

func (p *apiKeyProvider) AuthHeaders(_ context.Context) (map[string]string, error) {
	if p.key == "" {
		return nil, &AuthenticationError{Method: MethodAPIKey, Message: "api key is required"}
	}
	return map[string]string{p.header: p.key}, nil
}

func (p *apiKeyProvider) Authenticate(_ context.Context) error {
	if p.key == "" {
		return &AuthenticationError{Method: MethodAPIKey, Message: "api key is required"}
	}
	return nil
}

func (p *apiKeyProvider) IsAuthenticated() bool { return p.key != "" }

func (p *apiKeyProvider) HandleAuthFailure(_ context.Context, cause error) (bool, error) {
	return false, &AuthenticationError{Method: MethodAPIKey, Message: "api key rejected", Cause: cause}
}

func (p *apiKeyProvider) Status() AuthStatus {
	return AuthStatus{Authenticated: p.IsAuthenticated(), Method: MethodAPIKey}
}
