package signing

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/droidship/droidship/internal/core"
)

// Relative locations of the release-signing files under the project root.
// The Android Gradle build reads both at package time; droidship only ever
// checks that they exist, it never inspects their contents.
const (
	// PropertiesRelPath is the key-value file holding store/key passwords,
	// the key alias and the keystore path.
	PropertiesRelPath = "android/keystore.properties"

	// KeystoreRelPath is the binary keystore used to sign release builds.
	KeystoreRelPath = "android/keystore/app-release.jks"
)

// CheckKind identifies what a presence check looked for.
type CheckKind string

const (
	KindProperties CheckKind = "signing properties"
	KindKeystore   CheckKind = "release keystore"
)

// Check is the outcome of a single presence check.
type Check struct {
	// Path is the absolute path that was checked.
	Path string

	// Kind describes what the path is expected to hold.
	Kind CheckKind

	// Present reports whether the path exists.
	Present bool
}

// Report is the outcome of validating a project's signing configuration.
// It is created once per Validate call and never mutated afterwards.
type Report struct {
	Checks []Check
}

// Valid returns true iff every checked path is present.
func (r *Report) Valid() bool {
	for _, c := range r.Checks {
		if !c.Present {
			return false
		}
	}
	return true
}

// Missing returns the checks whose paths are absent.
func (r *Report) Missing() []Check {
	var missing []Check
	for _, c := range r.Checks {
		if !c.Present {
			missing = append(missing, c)
		}
	}
	return missing
}

// Validator checks that the signing files a release build depends on exist.
type Validator struct {
	fs core.FileSystem
}

// NewValidator creates a Validator with the given filesystem.
func NewValidator(fs core.FileSystem) *Validator {
	return &Validator{fs: fs}
}

// Validate checks the fixed signing paths under projectRoot and returns a
// Report. A missing signing file is a normal, reportable outcome, not an
// error; only an unusable projectRoot (absent, or not a directory) fails.
func (v *Validator) Validate(ctx context.Context, projectRoot string) (*Report, error) {
	info, err := v.fs.Stat(ctx, projectRoot)
	if err != nil {
		return nil, fmt.Errorf("project root %q is not accessible: %w", projectRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %q is not a directory", projectRoot)
	}

	report := &Report{}
	for _, probe := range []struct {
		rel  string
		kind CheckKind
	}{
		{PropertiesRelPath, KindProperties},
		{KeystoreRelPath, KindKeystore},
	} {
		path := filepath.Join(projectRoot, probe.rel)
		_, statErr := v.fs.Stat(ctx, path)
		report.Checks = append(report.Checks, Check{
			Path:    path,
			Kind:    probe.kind,
			Present: statErr == nil,
		})
	}

	return report, nil
}
