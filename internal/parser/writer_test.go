package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/droidship/droidship/internal/core"
)

func TestWriter_Write_JSON(t *testing.T) {
	mockFS := core.NewMockFileSystem()
	mockFS.SetFile("/t/package.json", []byte("{\n  \"name\": \"web\",\n  \"version\": \"1.0.0\"\n}\n"))

	w := NewWriter(mockFS)
	err := w.Write(context.Background(), Target{Path: "/t/package.json", Field: "version"}, "1.1.0")
	if err != nil {
		t.Fatalf("Write(): %v", err)
	}

	data, _ := mockFS.GetFile("/t/package.json")
	got := string(data)
	if !strings.Contains(got, `"version": "1.1.0"`) {
		t.Errorf("version not updated:\n%s", got)
	}
	// sjson edits in place, so surrounding formatting survives.
	if !strings.Contains(got, "{\n  \"name\": \"web\",") {
		t.Errorf("formatting not preserved:\n%s", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("missing trailing newline")
	}
}

func TestWriter_Write_YAML(t *testing.T) {
	mockFS := core.NewMockFileSystem()
	mockFS.SetFile("/t/Chart.yaml", []byte("name: chart\nversion: 0.1.0\n"))

	w := NewWriter(mockFS)
	if err := w.Write(context.Background(), Target{Path: "/t/Chart.yaml", Field: "version"}, "0.2.0"); err != nil {
		t.Fatalf("Write(): %v", err)
	}

	got, _ := NewReader(mockFS).Read(context.Background(), Target{Path: "/t/Chart.yaml", Field: "version"})
	if got != "0.2.0" {
		t.Errorf("version after write = %q, want 0.2.0", got)
	}
}

func TestWriter_Write_TOML(t *testing.T) {
	mockFS := core.NewMockFileSystem()
	mockFS.SetFile("/t/Cargo.toml", []byte("[package]\nname = \"app\"\nversion = \"1.0.0\"\n"))

	w := NewWriter(mockFS)
	if err := w.Write(context.Background(), Target{Path: "/t/Cargo.toml", Field: "package.version"}, "1.0.1"); err != nil {
		t.Fatalf("Write(): %v", err)
	}

	got, _ := NewReader(mockFS).Read(context.Background(), Target{Path: "/t/Cargo.toml", Field: "package.version"})
	if got != "1.0.1" {
		t.Errorf("version after write = %q, want 1.0.1", got)
	}
}

func TestWriter_Write_Raw(t *testing.T) {
	mockFS := core.NewMockFileSystem()
	mockFS.SetFile("/t/VERSION", []byte("1.0.0+1\n"))

	w := NewWriter(mockFS)
	if err := w.Write(context.Background(), Target{Path: "/t/VERSION"}, "1.0.0+2"); err != nil {
		t.Fatalf("Write(): %v", err)
	}

	data, _ := mockFS.GetFile("/t/VERSION")
	if string(data) != "1.0.0+2\n" {
		t.Errorf("raw file = %q, want %q", data, "1.0.0+2\n")
	}
}

func TestWriter_Write_Regex(t *testing.T) {
	mockFS := core.NewMockFileSystem()
	mockFS.SetFile("/t/app.rc", []byte("header\nAppVersion \"1.0.0\"\nfooter\n"))

	w := NewWriter(mockFS)
	target := Target{Path: "/t/app.rc", Format: FormatRegex, Pattern: `AppVersion "([^"]+)"`}
	if err := w.Write(context.Background(), target, "2.0.0"); err != nil {
		t.Fatalf("Write(): %v", err)
	}

	data, _ := mockFS.GetFile("/t/app.rc")
	if string(data) != "header\nAppVersion \"2.0.0\"\nfooter\n" {
		t.Errorf("regex write = %q", data)
	}
}

func TestWriter_Write_RegexNoMatch(t *testing.T) {
	mockFS := core.NewMockFileSystem()
	mockFS.SetFile("/t/app.rc", []byte("nothing"))

	w := NewWriter(mockFS)
	target := Target{Path: "/t/app.rc", Format: FormatRegex, Pattern: `AppVersion "([^"]+)"`}
	if err := w.Write(context.Background(), target, "2.0.0"); err == nil {
		t.Fatal("expected error when pattern does not match")
	}
}

func TestSyncer_Sync(t *testing.T) {
	mockFS := core.NewMockFileSystem()
	mockFS.SetFile("/proj/web/package.json", []byte(`{"version": "1.0.0+1"}`))
	mockFS.SetFile("/proj/VERSION", []byte("1.0.0+1\n"))

	syncer := NewSyncer(NewReader(mockFS), NewWriter(mockFS))
	targets := []Target{
		{Path: "web/package.json", Field: "version"},
		{Path: "VERSION"},
	}

	results, err := syncer.Sync(context.Background(), "/proj", "1.0.1+2", targets)
	if err != nil {
		t.Fatalf("Sync(): %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	for _, res := range results {
		if !res.Updated {
			t.Errorf("target %q not updated", res.Target.Path)
		}
		if res.Previous != "1.0.0+1" {
			t.Errorf("previous = %q, want 1.0.0+1", res.Previous)
		}
	}

	data, _ := mockFS.GetFile("/proj/VERSION")
	if string(data) != "1.0.1+2\n" {
		t.Errorf("VERSION = %q", data)
	}
}

func TestSyncer_Sync_AlreadyCurrent(t *testing.T) {
	mockFS := core.NewMockFileSystem()
	mockFS.SetFile("/proj/VERSION", []byte("1.0.1+2\n"))

	syncer := NewSyncer(NewReader(mockFS), NewWriter(mockFS))
	results, err := syncer.Sync(context.Background(), "/proj", "1.0.1+2", []Target{{Path: "VERSION"}})
	if err != nil {
		t.Fatalf("Sync(): %v", err)
	}
	if results[0].Updated {
		t.Error("target marked updated although it was already current")
	}
}

func TestSyncer_Sync_KeepsGoingOnFailure(t *testing.T) {
	mockFS := core.NewMockFileSystem()
	mockFS.SetFile("/proj/VERSION", []byte("1.0.0+1\n"))

	syncer := NewSyncer(NewReader(mockFS), NewWriter(mockFS))
	targets := []Target{
		{Path: "missing.json", Field: "version"},
		{Path: "VERSION"},
	}

	results, err := syncer.Sync(context.Background(), "/proj", "1.0.1+2", targets)
	if err == nil {
		t.Fatal("expected aggregate error")
	}
	if results[0].Err == nil {
		t.Error("missing target should carry an error")
	}
	if !results[1].Updated {
		t.Error("healthy target should still be updated")
	}
}
