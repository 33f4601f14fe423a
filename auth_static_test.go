package wpbridge

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppPasswordHeadersAreDeterministic(t *testing.T) {
	p := newStaticBasicProvider(MethodAppPassword, "bob", "abcd1234efgh5678")

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("bob:abcd1234efgh5678"))
	for i := 0; i < 3; i++ {
		headers, err := p.AuthHeaders(context.Background())
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"Authorization": want}, headers)
	}
	assert.True(t, p.IsAuthenticated())
	require.NoError(t, p.Authenticate(context.Background()))
}

func TestBasicProviderMissingFields(t *testing.T) {
	p := newStaticBasicProvider(MethodBasic, "bob", "")

	_, err := p.AuthHeaders(context.Background())
	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, MethodBasic, authErr.Method)
	assert.False(t, p.IsAuthenticated())
	require.Error(t, p.Authenticate(context.Background()))
}

func TestStaticProvidersCannotRecover(t *testing.T) {
	p := newStaticBasicProvider(MethodAppPassword, "bob", "secret")
	recovered, err := p.HandleAuthFailure(context.Background(), assert.AnError)
	assert.False(t, recovered)

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestAPIKeyProviderHeaders(t *testing.T) {
	p := newAPIKeyProvider(APIKeyCredentials{Key: "k-123"})
	headers, err := p.AuthHeaders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"X-API-Key": "k-123"}, headers)

	custom := newAPIKeyProvider(APIKeyCredentials{Key: "k-123", Header: "X-Custom-Key"})
	headers, err = custom.AuthHeaders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"X-Custom-Key": "k-123"}, headers)
}

func TestCookieProviderHeaders(t *testing.T) {
	p := newCookieProvider(CookieCredentials{Cookie: "wordpress_logged_in=abc", Nonce: "n0nce"})
	headers, err := p.AuthHeaders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "wordpress_logged_in=abc", headers["Cookie"])
	assert.Equal(t, "n0nce", headers["X-WP-Nonce"])

	status := p.Status()
	assert.True(t, status.Authenticated)
	assert.Equal(t, MethodCookie, status.Method)
	assert.True(t, status.TokenExpiry.IsZero())
}

func TestCredentialValidation(t *testing.T) {
	cases := []struct {
		name  string
		creds Credentials
		ok    bool
	}{
		{"app password complete", AppPasswordCredentials{Username: "bob", AppPassword: "pw"}, true},
		{"app password missing secret", AppPasswordCredentials{Username: "bob"}, false},
		{"basic complete", BasicCredentials{Username: "bob", Password: "pw"}, true},
		{"basic missing username", BasicCredentials{Password: "pw"}, false},
		{"jwt complete", JWTCredentials{Username: "bob", Password: "pw"}, true},
		{"jwt missing password", JWTCredentials{Username: "bob"}, false},
		{"api key complete", APIKeyCredentials{Key: "k"}, true},
		{"api key missing", APIKeyCredentials{}, false},
		{"cookie complete", CookieCredentials{Cookie: "c", Nonce: "n"}, true},
		{"cookie missing nonce", CookieCredentials{Cookie: "c"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.creds.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
