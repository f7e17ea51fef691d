// Package core defines the filesystem and process-runner seams shared by
// all droidship components, together with in-memory implementations used
// throughout the test suite.
package core
