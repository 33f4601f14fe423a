package wpbridge

// Version is the library version, overridable at build time via
// -ldflags "-X github.com/pressops/wp-bridge.Version=...".
var Version = "0.3.0"

var defaultUserAgent = "wp-bridge/" + Version
