// Package wpbridge is a resilient client core for the WordPress REST API.
//
// It handles credential management across several authentication schemes
// (application passwords, basic auth, JWT bearer tokens, API keys, cookie
// auth) and provides resilient request execution on top of a plain HTTP
// transport: per-client pacing, retry with exponential backoff, an HTTP
// error taxonomy, and automatic recovery from authentication failures.
//
// The executor depends only on four narrow capability interfaces
// (ConfigProvider, ParameterValidator, ErrorHandler, AuthProvider), so each
// concern can be substituted or unit-tested independently. New assembles
// default implementations of all four into a ready-to-use Client:
//
//	client, err := wpbridge.New(
//		wpbridge.Config{BaseURL: "https://example.com/wp-json"},
//		wpbridge.AppPasswordCredentials{Username: "bob", AppPassword: "abcd 1234"},
//	)
//	if err != nil {
//		// credentials were structurally invalid
//	}
//	resp, err := client.Execute(ctx, &wpbridge.Request{Method: "GET", Path: "/wp/v2/posts"})
//
// Resource-specific operations (posts, pages, media, ...) are intentionally
// not part of this package; callers build them on top of Execute.
package wpbridge
