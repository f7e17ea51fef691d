// Package version exposes the droidship build version.
package version

// current is overridden at build time via
// -ldflags "-X github.com/droidship/droidship/internal/version.current=...".
var current = "0.1.0"

// GetVersion returns the droidship version string.
func GetVersion() string {
	return current
}
