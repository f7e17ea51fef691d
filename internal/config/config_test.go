package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/droidship/droidship/internal/core"
	"github.com/droidship/droidship/internal/parser"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background(), core.NewMockFileSystem(), "/proj")
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if cfg.Manifest != "pubspec.yaml" {
		t.Errorf("Manifest = %q, want pubspec.yaml", cfg.Manifest)
	}
	if len(cfg.Sync) != 0 {
		t.Errorf("Sync = %v, want empty", cfg.Sync)
	}
}

func TestLoad_FromFile(t *testing.T) {
	content := `manifest: app/pubspec.yaml
keystore:
  alias: upload
  validity-days: 3650
build:
  flavor: prod
  obfuscate: true
sync:
  - path: web/package.json
    field: version
  - path: VERSION
    format: raw
`
	mockFS := core.NewMockFileSystem()
	mockFS.SetFile(filepath.Join("/proj", ConfigFileName), []byte(content))

	cfg, err := Load(context.Background(), mockFS, "/proj")
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	if cfg.Manifest != "app/pubspec.yaml" {
		t.Errorf("Manifest = %q", cfg.Manifest)
	}
	ks := cfg.KeystoreOrDefault()
	if ks.Alias != "upload" || ks.ValidityDays != 3650 {
		t.Errorf("Keystore = %+v", ks)
	}
	build := cfg.BuildOrDefault()
	if build.Flavor != "prod" || !build.Obfuscate {
		t.Errorf("Build = %+v", build)
	}
	if len(cfg.Sync) != 2 {
		t.Fatalf("len(Sync) = %d, want 2", len(cfg.Sync))
	}
	if cfg.Sync[1].Format != parser.FormatRaw {
		t.Errorf("Sync[1].Format = %q, want raw", cfg.Sync[1].Format)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	mockFS := core.NewMockFileSystem()
	mockFS.SetFile(filepath.Join("/proj", ConfigFileName), []byte(":\n\t- broken"))

	if _, err := Load(context.Background(), mockFS, "/proj"); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestConfig_ManifestPath(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     string
	}{
		{"relative", "pubspec.yaml", filepath.Join("/proj", "pubspec.yaml")},
		{"nested relative", "app/pubspec.yaml", filepath.Join("/proj", "app", "pubspec.yaml")},
		{"absolute", "/elsewhere/pubspec.yaml", "/elsewhere/pubspec.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Manifest: tt.manifest}
			if got := cfg.ManifestPath("/proj"); got != tt.want {
				t.Errorf("ManifestPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSaver_SaveAndReload(t *testing.T) {
	tmp := t.TempDir()
	cfg := &Config{
		Manifest: "pubspec.yaml",
		Keystore: &KeystoreConfig{Alias: "upload"},
		Sync:     []parser.Target{{Path: "VERSION", Format: parser.FormatRaw}},
	}

	saver := NewSaver(nil, nil, nil)
	if err := saver.Save(cfg, tmp); err != nil {
		t.Fatalf("Save(): %v", err)
	}

	loaded, err := Load(context.Background(), core.NewOSFileSystem(), tmp)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if loaded.Manifest != cfg.Manifest {
		t.Errorf("Manifest = %q, want %q", loaded.Manifest, cfg.Manifest)
	}
	if loaded.KeystoreOrDefault().Alias != "upload" {
		t.Errorf("Keystore = %+v", loaded.Keystore)
	}
	if len(loaded.Sync) != 1 || loaded.Sync[0].Path != "VERSION" {
		t.Errorf("Sync = %+v", loaded.Sync)
	}
}

type failingMarshaler struct{}

func (failingMarshaler) Marshal(any) ([]byte, error) {
	return nil, errors.New("marshal failed")
}

func TestSaver_MarshalError(t *testing.T) {
	tmp := t.TempDir()
	saver := NewSaver(failingMarshaler{}, nil, nil)
	if err := saver.Save(Default(), tmp); err == nil {
		t.Fatal("expected marshal error")
	}
}

type failingOpener struct{}

func (failingOpener) OpenFile(string, int, os.FileMode) (*os.File, error) {
	return nil, errors.New("open failed")
}

func TestSaver_OpenError(t *testing.T) {
	saver := NewSaver(nil, failingOpener{}, nil)
	if err := saver.Save(Default(), t.TempDir()); err == nil {
		t.Fatal("expected open error")
	}
}
