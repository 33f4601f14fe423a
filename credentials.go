package wpbridge

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AuthMethod identifies an authentication scheme.
type AuthMethod string

const (
	MethodAppPassword AuthMethod = "app-password"
	MethodBasic       AuthMethod = "basic"
	MethodJWT         AuthMethod = "jwt"
	MethodAPIKey      AuthMethod = "api-key"
	MethodCookie      AuthMethod = "cookie"
)

// Credentials describes one authentication configuration. Exactly one
// concrete type exists per scheme; each carries only the fields its scheme
// needs. A Credentials value is immutable for the life of a client.
type Credentials interface {
	Method() AuthMethod
	// Validate checks that the scheme's required fields are non-empty.
	// Constructing a provider from invalid credentials is a fatal
	// configuration error, not a runtime one.
	Validate() error
}

// AppPasswordCredentials authenticates with a WordPress application password.
type AppPasswordCredentials struct {
	Username    string
	AppPassword string
}

func (c AppPasswordCredentials) Method() AuthMethod { return MethodAppPassword }

func (c AppPasswordCredentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.AppPassword, validation.Required),
	)
}

// BasicCredentials authenticates with the account's own password.
type BasicCredentials struct {
	Username string
	Password string
}

func (c BasicCredentials) Method() AuthMethod { return MethodBasic }

func (c BasicCredentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Password, validation.Required),
	)
}

// JWTCredentials exchanges a username and password for a short-lived bearer
// token at a token-issuance endpoint. TokenEndpoint overrides the default
// wp-jwt-auth plugin location ({BaseURL}/jwt-auth/v1) when set.
type JWTCredentials struct {
	Username      string
	Password      string
	TokenEndpoint string
}

func (c JWTCredentials) Method() AuthMethod { return MethodJWT }

func (c JWTCredentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Password, validation.Required),
	)
}

// APIKeyCredentials sends a static key in a custom header. Header defaults
// to "X-API-Key" when empty.
type APIKeyCredentials struct {
	Key    string
	Header string
}

func (c APIKeyCredentials) Method() AuthMethod { return MethodAPIKey }

func (c APIKeyCredentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Key, validation.Required),
	)
}

// CookieCredentials replays a logged-in session cookie together with the
// matching REST nonce.
type CookieCredentials struct {
	Cookie string
	Nonce  string
}

func (c CookieCredentials) Method() AuthMethod { return MethodCookie }

func (c CookieCredentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Cookie, validation.Required),
		validation.Field(&c.Nonce, validation.Required),
	)
}
