package pubspec

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/droidship/droidship/internal/core"
)

// versionKey is the line prefix that declares the app version.
const versionKey = "version:"

// Manager reads and rewrites the version line of a pubspec.yaml manifest.
//
// The manifest is treated as line-oriented text: only the first line
// starting with "version:" is ever touched, every other line is written
// back byte-identical. When the manifest declares more than one version
// line, subsequent occurrences are ignored on purpose.
type Manager struct {
	fs core.FileSystem
}

// NewManager creates a Manager with the given filesystem.
func NewManager(fs core.FileSystem) *Manager {
	return &Manager{fs: fs}
}

// Read returns the version declared in the manifest at path.
//
// It fails with ErrVersionNotFound when no line starts with "version:",
// and with ErrMalformedVersion when the value does not parse.
func (m *Manager) Read(ctx context.Context, path string) (AppVersion, error) {
	doc, err := m.load(ctx, path)
	if err != nil {
		return AppVersion{}, err
	}

	if doc.versionIdx < 0 {
		return AppVersion{}, fmt.Errorf("%w in %q", ErrVersionNotFound, path)
	}

	value := strings.TrimPrefix(doc.lines[doc.versionIdx], versionKey)
	version, err := ParseVersion(value)
	if err != nil {
		return AppVersion{}, fmt.Errorf("in %q: %w", path, err)
	}
	return version, nil
}

// Bump increments the build number by one and rewrites the manifest.
// When newName is non-empty it replaces the version name as well.
// It returns the version that was written.
func (m *Manager) Bump(ctx context.Context, path, newName string) (AppVersion, error) {
	current, err := m.Read(ctx, path)
	if err != nil {
		return AppVersion{}, err
	}

	next := current.Bumped(newName)
	if err := m.Set(ctx, path, next); err != nil {
		return AppVersion{}, err
	}
	return next, nil
}

// Set rewrites the manifest's version line with the given version.
// The rest of the file is preserved byte-for-byte, including the
// trailing-newline convention.
func (m *Manager) Set(ctx context.Context, path string, version AppVersion) error {
	doc, err := m.load(ctx, path)
	if err != nil {
		return err
	}
	if doc.versionIdx < 0 {
		return fmt.Errorf("%w in %q", ErrVersionNotFound, path)
	}

	line := versionKey + " " + version.String()
	// A CRLF manifest keeps its line endings: the split below leaves the
	// \r on each line, so restore it on the rewritten one.
	if strings.HasSuffix(doc.lines[doc.versionIdx], "\r") {
		line += "\r"
	}
	doc.lines[doc.versionIdx] = line

	return m.save(ctx, path, doc)
}

// document holds a manifest split into lines plus enough bookkeeping to
// reserialize it byte-identically.
type document struct {
	lines           []string
	versionIdx      int
	trailingNewline bool
}

func (m *Manager) load(ctx context.Context, path string) (*document, error) {
	data, err := m.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}

	content := string(data)
	trailing := strings.HasSuffix(content, "\n")
	if trailing {
		content = content[:len(content)-1]
	}

	var lines []string
	if content != "" || !trailing {
		lines = strings.Split(content, "\n")
	}

	idx := -1
	for i, line := range lines {
		if strings.HasPrefix(line, versionKey) {
			idx = i
			break
		}
	}

	return &document{lines: lines, versionIdx: idx, trailingNewline: trailing}, nil
}

// save writes the document to a temp file next to the manifest and
// renames it into place, so a crash mid-write cannot truncate it.
func (m *Manager) save(ctx context.Context, path string, doc *document) error {
	content := strings.Join(doc.lines, "\n")
	if doc.trailingNewline {
		content += "\n"
	}

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err := m.fs.WriteFile(ctx, tmp, []byte(content), core.PermFileDefault); err != nil {
		return fmt.Errorf("failed to write manifest %q: %w", path, err)
	}
	if err := m.fs.Rename(ctx, tmp, path); err != nil {
		return fmt.Errorf("failed to replace manifest %q: %w", path, err)
	}
	return nil
}
