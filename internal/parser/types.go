package parser

// Format represents the supported file formats for version sync targets.
type Format string

const (
	// FormatJSON is for JSON files (package.json, etc.).
	FormatJSON Format = "json"

	// FormatYAML is for YAML files (Chart.yaml, snap/snapcraft.yaml, etc.).
	FormatYAML Format = "yaml"

	// FormatTOML is for TOML files (Cargo.toml, pyproject.toml, etc.).
	FormatTOML Format = "toml"

	// FormatRaw is for plain text files whose entire content is the version.
	FormatRaw Format = "raw"

	// FormatRegex is for files requiring regex extraction/substitution.
	FormatRegex Format = "regex"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML, FormatRaw, FormatRegex:
		return true
	default:
		return false
	}
}

// Target describes one secondary file the app version is synced into
// after a bump.
type Target struct {
	// Path is the file path, relative to the project root.
	Path string `yaml:"path"`

	// Format specifies the file format. When empty, it is detected
	// from the file name.
	Format Format `yaml:"format,omitempty"`

	// Field is the dot-notation path to the version field for
	// structured formats, e.g. "version" or "package.version".
	Field string `yaml:"field,omitempty"`

	// Pattern is the regex pattern for the regex format. Its first
	// capturing group is replaced with the new version.
	Pattern string `yaml:"pattern,omitempty"`
}
