// Package parser reads and rewrites version fields in the secondary files
// a bump is synced into: JSON, YAML, TOML, raw text, and regex targets.
// The pubspec.yaml version line itself is handled by package pubspec.
package parser
