// Package flutter wraps the external flutter binary for release builds:
// argument construction, invocation through the core.CommandRunner seam,
// and artifact verification at the tool's fixed output paths.
package flutter
