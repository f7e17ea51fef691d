package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/droidship/droidship/internal/core"
	"github.com/droidship/droidship/internal/parser"
	"github.com/goccy/go-yaml"
)

// ConfigFileName is the per-project configuration file, looked up at the
// project root.
const ConfigFileName = ".droidship.yaml"

// ConfigFilePerm is the permission for a saved configuration file.
const ConfigFilePerm = core.PermFileDefault

// KeystoreConfig holds keystore-generation settings for setup.
type KeystoreConfig struct {
	Alias        string `yaml:"alias,omitempty"`
	ValidityDays int    `yaml:"validity-days,omitempty"`
	DName        string `yaml:"dname,omitempty"`
}

// BuildConfig holds flutter build settings.
type BuildConfig struct {
	Flavor         string `yaml:"flavor,omitempty"`
	Obfuscate      bool   `yaml:"obfuscate,omitempty"`
	SplitDebugInfo string `yaml:"split-debug-info,omitempty"`
}

// Config is the main configuration structure for droidship.
type Config struct {
	// Manifest is the version manifest path, relative to the project root.
	Manifest string `yaml:"manifest"`

	Keystore *KeystoreConfig `yaml:"keystore,omitempty"`
	Build    *BuildConfig    `yaml:"build,omitempty"`

	// Sync lists secondary files the app version is propagated into
	// after a bump.
	Sync []parser.Target `yaml:"sync,omitempty"`
}

// Default returns the configuration used when no .droidship.yaml exists.
func Default() *Config {
	return &Config{Manifest: "pubspec.yaml"}
}

// ManifestPath resolves the manifest path against the project root.
func (c *Config) ManifestPath(projectRoot string) string {
	if filepath.IsAbs(c.Manifest) {
		return c.Manifest
	}
	return filepath.Join(projectRoot, c.Manifest)
}

// KeystoreOrDefault returns the keystore section, or an empty one.
func (c *Config) KeystoreOrDefault() KeystoreConfig {
	if c.Keystore == nil {
		return KeystoreConfig{}
	}
	return *c.Keystore
}

// BuildOrDefault returns the build section, or an empty one.
func (c *Config) BuildOrDefault() BuildConfig {
	if c.Build == nil {
		return BuildConfig{}
	}
	return *c.Build
}

// Load reads .droidship.yaml from the project root. A missing file is not
// an error: defaults are returned instead.
func Load(ctx context.Context, filesystem core.FileSystem, projectRoot string) (*Config, error) {
	path := filepath.Join(projectRoot, ConfigFileName)

	data, err := filesystem.ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	if cfg.Manifest == "" {
		cfg.Manifest = "pubspec.yaml"
	}
	return cfg, nil
}

// FileOpener abstracts file opening operations for testability.
type FileOpener interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// FileWriter abstracts file writing operations for testability.
type FileWriter interface {
	WriteFile(file *os.File, data []byte) (int, error)
}

// Saver handles configuration saving with injected dependencies.
type Saver struct {
	marshaler  core.Marshaler
	fileOpener FileOpener
	fileWriter FileWriter
}

// osFileOpener is the production implementation of FileOpener.
type osFileOpener struct{}

func (o *osFileOpener) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// osFileWriter is the production implementation of FileWriter.
type osFileWriter struct{}

func (w *osFileWriter) WriteFile(file *os.File, data []byte) (int, error) {
	return file.Write(data)
}

// yamlMarshaler is the production implementation of core.Marshaler.
type yamlMarshaler struct{}

func (m *yamlMarshaler) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// NewSaver creates a Saver with the given dependencies.
// If any dependency is nil, the production default is used.
func NewSaver(marshaler core.Marshaler, opener FileOpener, writer FileWriter) *Saver {
	if marshaler == nil {
		marshaler = &yamlMarshaler{}
	}
	if opener == nil {
		opener = &osFileOpener{}
	}
	if writer == nil {
		writer = &osFileWriter{}
	}
	return &Saver{marshaler: marshaler, fileOpener: opener, fileWriter: writer}
}

// Save writes the configuration to .droidship.yaml under the project root.
func (s *Saver) Save(cfg *Config, projectRoot string) error {
	return s.SaveTo(cfg, filepath.Join(projectRoot, ConfigFileName))
}

// SaveTo writes the configuration to the specified file path.
func (s *Saver) SaveTo(cfg *Config, configFile string) error {
	file, err := s.fileOpener.OpenFile(configFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open config file %q: %w", configFile, err)
	}
	defer file.Close()

	data, err := s.marshaler.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", configFile, err)
	}

	if _, err := s.fileWriter.WriteFile(file, data); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", configFile, err)
	}
	return nil
}
