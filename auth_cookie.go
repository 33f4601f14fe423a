package wpbridge

import "context"

// cookieProvider replays a logged-in WordPress session: the session cookie
// plus the X-WP-Nonce header the REST API requires for cookie auth. Like the
// other static schemes it holds no refreshable state.
type cookieProvider struct {
	cookie string
	nonce  string
}

func newCookieProvider(creds CookieCredentials) *cookieProvider {
	return &cookieProvider{cookie: creds.Cookie, nonce: creds.Nonce}
}

func (p *cookieProvider) Method() AuthMethod { return MethodCookie }

func (p *cookieProvider) AuthHeaders(_ context.Context) (map[string]string, error) {
	if p.cookie == "" || p.nonce == "" {
		return nil, &AuthenticationError{Method: MethodCookie, Message: "cookie and nonce are required"}
	}
	return map[string]string{
		"Cookie":     p.cookie,
		"X-WP-Nonce": p.nonce,
	}, nil
}

func (p *cookieProvider) Authenticate(_ context.Context) error {
	if p.cookie == "" || p.nonce == "" {
		return &AuthenticationError{Method: MethodCookie, Message: "cookie and nonce are required"}
	}
	return nil
}

func (p *cookieProvider) IsAuthenticated() bool { return p.cookie != "" && p.nonce != "" }

func (p *cookieProvider) HandleAuthFailure(_ context.Context, cause error) (bool, error) {
	// An expired session or stale nonce needs a fresh login; nothing to
	// recover here.
	return false, &AuthenticationError{Method: MethodCookie, Message: "session rejected", Cause: cause}
}

func (p *cookieProvider) Status() AuthStatus {
	return AuthStatus{Authenticated: p.IsAuthenticated(), Method: MethodCookie}
}
