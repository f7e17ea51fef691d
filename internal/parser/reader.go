package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/droidship/droidship/internal/core"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Reader extracts version strings from sync-target files.
type Reader struct {
	fs core.FileSystem
}

// NewReader creates a Reader with the given filesystem.
func NewReader(fs core.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// Read returns the version string currently held by the target.
func (r *Reader) Read(ctx context.Context, target Target) (string, error) {
	format, err := resolveFormat(target)
	if err != nil {
		return "", err
	}

	data, err := r.fs.ReadFile(ctx, target.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", target.Path, err)
	}

	switch format {
	case FormatJSON:
		return readStructured(data, target, func(d []byte, v *map[string]any) error {
			return json.Unmarshal(d, v)
		})
	case FormatYAML:
		return readStructured(data, target, func(d []byte, v *map[string]any) error {
			return yaml.Unmarshal(d, v)
		})
	case FormatTOML:
		return readStructured(data, target, func(d []byte, v *map[string]any) error {
			return toml.Unmarshal(d, v)
		})
	case FormatRaw:
		return strings.TrimSpace(string(data)), nil
	case FormatRegex:
		return readRegex(data, target)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// readStructured decodes data with the given unmarshal function and walks
// the dot-notation field path to the version string.
func readStructured(data []byte, target Target, unmarshal func([]byte, *map[string]any) error) (string, error) {
	if target.Field == "" {
		return "", fmt.Errorf("field is required for %q", target.Path)
	}

	var obj map[string]any
	if err := unmarshal(data, &obj); err != nil {
		return "", fmt.Errorf("failed to parse %q: %w", target.Path, err)
	}

	value, err := lookupField(obj, target.Field)
	if err != nil {
		return "", fmt.Errorf("in %q: %w", target.Path, err)
	}

	version, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q in %q is not a string", target.Field, target.Path)
	}
	return version, nil
}

func readRegex(data []byte, target Target) (string, error) {
	if target.Pattern == "" {
		return "", fmt.Errorf("pattern is required for %q", target.Path)
	}

	re, err := regexp.Compile(target.Pattern)
	if err != nil {
		return "", fmt.Errorf("invalid pattern %q: %w", target.Pattern, err)
	}

	matches := re.FindSubmatch(data)
	if len(matches) < 2 {
		return "", fmt.Errorf("no version match in %q (pattern %q needs a capturing group)", target.Path, target.Pattern)
	}
	return string(matches[1]), nil
}

// lookupField walks a nested map using dot notation,
// e.g. "package.version" reads obj["package"]["version"].
func lookupField(obj map[string]any, field string) (any, error) {
	parts := strings.Split(field, ".")
	current := any(obj)

	for i, part := range parts {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q is not an object at %q", strings.Join(parts[:i], "."), part)
		}
		value, exists := currentMap[part]
		if !exists {
			return nil, fmt.Errorf("field %q not found", field)
		}
		current = value
	}
	return current, nil
}

// resolveFormat returns the target's declared format, falling back to
// name-based detection.
func resolveFormat(target Target) (Format, error) {
	if target.Format != "" {
		if !target.Format.IsValid() {
			return "", fmt.Errorf("invalid format %q for %q", target.Format, target.Path)
		}
		return target.Format, nil
	}
	return DetectFormat(target.Path), nil
}

// DetectFormat picks a format from the file name or extension.
func DetectFormat(path string) Format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lower, ".toml"):
		return FormatTOML
	default:
		return FormatRaw
	}
}
