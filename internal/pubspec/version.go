package pubspec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// AppVersion represents a Flutter app version as declared in pubspec.yaml:
// a free-form version name plus a non-negative build number, encoded as
// "<name>+<build>" (e.g. "1.0.1+12").
type AppVersion struct {
	Name  string
	Build int
}

var (
	// ErrVersionNotFound is returned when the manifest has no version line.
	ErrVersionNotFound = errors.New("version line not found")

	// ErrMalformedVersion is returned when the version value does not
	// split into a name and a non-negative integer build number.
	ErrMalformedVersion = errors.New("malformed version")
)

// String returns the canonical "<name>+<build>" encoding.
func (v AppVersion) String() string {
	var sb strings.Builder
	sb.Grow(len(v.Name) + 4)
	sb.WriteString(v.Name)
	sb.WriteByte('+')
	sb.WriteString(strconv.Itoa(v.Build))
	return sb.String()
}

// Bumped returns a copy with the build number incremented by one.
// When newName is non-empty it replaces the version name.
func (v AppVersion) Bumped(newName string) AppVersion {
	name := v.Name
	if newName != "" {
		name = newName
	}
	return AppVersion{Name: name, Build: v.Build + 1}
}

// ParseVersion parses a "<name>+<build>" version value.
//
// The value is split on the first '+'; everything before it is the
// version name, everything after it must parse as a non-negative
// integer build number. A missing '+<n>' suffix, an empty name, or an
// unparseable build number returns ErrMalformedVersion (wrapped).
func ParseVersion(s string) (AppVersion, error) {
	value := strings.TrimSpace(s)

	idx := strings.Index(value, "+")
	if idx < 0 {
		return AppVersion{}, fmt.Errorf("%w: %q has no +<build> suffix", ErrMalformedVersion, value)
	}

	name := value[:idx]
	if name == "" {
		return AppVersion{}, fmt.Errorf("%w: %q has an empty version name", ErrMalformedVersion, value)
	}

	build, err := strconv.Atoi(value[idx+1:])
	if err != nil {
		return AppVersion{}, fmt.Errorf("%w: build number %q is not an integer", ErrMalformedVersion, value[idx+1:])
	}
	if build < 0 {
		return AppVersion{}, fmt.Errorf("%w: build number %d is negative", ErrMalformedVersion, build)
	}

	return AppVersion{Name: name, Build: build}, nil
}
