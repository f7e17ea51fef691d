package parser

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/droidship/droidship/internal/core"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/sjson"
)

// Writer updates version strings inside sync-target files.
type Writer struct {
	fs core.FileSystem
}

// NewWriter creates a Writer with the given filesystem.
func NewWriter(fs core.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// Write sets the target's version field to version.
func (w *Writer) Write(ctx context.Context, target Target, version string) error {
	format, err := resolveFormat(target)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		return w.writeJSON(ctx, target, version)
	case FormatYAML:
		return w.writeMarshaled(ctx, target, version,
			func(d []byte, v *map[string]any) error { return yaml.Unmarshal(d, v) },
			func(v any) ([]byte, error) { return yaml.Marshal(v) })
	case FormatTOML:
		return w.writeMarshaled(ctx, target, version,
			func(d []byte, v *map[string]any) error { return toml.Unmarshal(d, v) },
			func(v any) ([]byte, error) { return toml.Marshal(v) })
	case FormatRaw:
		return w.writeRaw(ctx, target, version)
	case FormatRegex:
		return w.writeRegex(ctx, target, version)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// writeJSON updates only the version field via sjson, preserving the
// document's formatting and field order.
func (w *Writer) writeJSON(ctx context.Context, target Target, version string) error {
	if target.Field == "" {
		return fmt.Errorf("field is required for %q", target.Path)
	}

	data, err := w.fs.ReadFile(ctx, target.Path)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", target.Path, err)
	}

	updated, err := sjson.SetBytes(data, target.Field, version)
	if err != nil {
		return fmt.Errorf("failed to set %q in %q: %w", target.Field, target.Path, err)
	}
	if len(updated) > 0 && updated[len(updated)-1] != '\n' {
		updated = append(updated, '\n')
	}

	return w.writeBack(ctx, target.Path, updated)
}

// writeMarshaled re-marshals the whole document with the version field
// replaced. YAML/TOML lose comment formatting here; sync targets are
// expected to be machine-managed files.
func (w *Writer) writeMarshaled(
	ctx context.Context,
	target Target,
	version string,
	unmarshal func([]byte, *map[string]any) error,
	marshal func(any) ([]byte, error),
) error {
	if target.Field == "" {
		return fmt.Errorf("field is required for %q", target.Path)
	}

	data, err := w.fs.ReadFile(ctx, target.Path)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", target.Path, err)
	}

	var obj map[string]any
	if err := unmarshal(data, &obj); err != nil {
		return fmt.Errorf("failed to parse %q: %w", target.Path, err)
	}
	if err := setField(obj, target.Field, version); err != nil {
		return fmt.Errorf("in %q: %w", target.Path, err)
	}

	updated, err := marshal(obj)
	if err != nil {
		return fmt.Errorf("failed to serialize %q: %w", target.Path, err)
	}
	return w.writeBack(ctx, target.Path, updated)
}

func (w *Writer) writeRaw(ctx context.Context, target Target, version string) error {
	content := version
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return w.writeBack(ctx, target.Path, []byte(content))
}

func (w *Writer) writeRegex(ctx context.Context, target Target, version string) error {
	if target.Pattern == "" {
		return fmt.Errorf("pattern is required for %q", target.Path)
	}

	data, err := w.fs.ReadFile(ctx, target.Path)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", target.Path, err)
	}

	re, err := regexp.Compile(target.Pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", target.Pattern, err)
	}
	if !re.Match(data) {
		return fmt.Errorf("pattern %q does not match %q", target.Pattern, target.Path)
	}

	updated := re.ReplaceAllFunc(data, func(match []byte) []byte {
		submatches := re.FindSubmatch(match)
		if len(submatches) < 2 {
			return match
		}
		return []byte(strings.Replace(string(match), string(submatches[1]), version, 1))
	})

	return w.writeBack(ctx, target.Path, updated)
}

func (w *Writer) writeBack(ctx context.Context, path string, data []byte) error {
	if err := w.fs.WriteFile(ctx, path, data, core.PermFileDefault); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}

// setField sets a value in a nested map using dot notation, creating
// intermediate maps as needed.
func setField(obj map[string]any, field string, value any) error {
	parts := strings.Split(field, ".")
	current := obj

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		next, exists := current[part]
		if !exists {
			child := make(map[string]any)
			current[part] = child
			current = child
			continue
		}
		childMap, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("field %q is not an object at %q", strings.Join(parts[:i+1], "."), part)
		}
		current = childMap
	}

	current[parts[len(parts)-1]] = value
	return nil
}
