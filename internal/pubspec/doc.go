// Package pubspec parses and rewrites the "version: <name>+<build>" line
// of a Flutter pubspec.yaml manifest. Only the version line is ever
// modified; the rest of the file is preserved byte-for-byte.
package pubspec
