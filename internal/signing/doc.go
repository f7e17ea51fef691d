// Package signing validates the presence of the release-signing files a
// Flutter Android build depends on. Contents are never parsed; password
// correctness is the build toolchain's problem, not droidship's.
package signing
