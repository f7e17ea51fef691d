package flutter

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/droidship/droidship/internal/core"
)

func TestBuildCommandArgs(t *testing.T) {
	tests := []struct {
		name string
		args BuildArgs
		want []string
	}{
		{
			name: "appbundle",
			args: BuildArgs{Target: "appbundle"},
			want: []string{"build", "appbundle", "--release"},
		},
		{
			name: "apk split per abi",
			args: BuildArgs{Target: "apk", SplitPerABI: true},
			want: []string{"build", "apk", "--release", "--split-per-abi"},
		},
		{
			name: "flavor",
			args: BuildArgs{Target: "appbundle", Flavor: "prod"},
			want: []string{"build", "appbundle", "--release", "--flavor", "prod"},
		},
		{
			name: "obfuscation with debug info",
			args: BuildArgs{Target: "appbundle", Obfuscate: true, SplitDebugInfo: "build/symbols"},
			want: []string{"build", "appbundle", "--release", "--obfuscate", "--split-debug-info", "build/symbols"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildCommandArgs(tt.args)
			if !slices.Equal(got, tt.want) {
				t.Errorf("BuildCommandArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToolchain_BuildAppBundle(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockFS := core.NewMockFileSystem()
		mockFS.SetFile(filepath.Join("/proj", BundleRelPath), []byte("aab"))
		runner := core.NewMockCommandRunner()

		tc := NewToolchain(mockFS, runner)
		artifact, err := tc.BuildAppBundle(context.Background(), "/proj", BuildArgs{})
		if err != nil {
			t.Fatalf("BuildAppBundle(): %v", err)
		}
		if want := filepath.Join("/proj", BundleRelPath); artifact != want {
			t.Errorf("artifact = %q, want %q", artifact, want)
		}
		if got := runner.Calls[0].String(); got != "flutter build appbundle --release" {
			t.Errorf("invoked %q", got)
		}
		if runner.Calls[0].Dir != "/proj" {
			t.Errorf("run dir = %q, want /proj", runner.Calls[0].Dir)
		}
	})

	t.Run("missing artifact after build", func(t *testing.T) {
		tc := NewToolchain(core.NewMockFileSystem(), core.NewMockCommandRunner())
		if _, err := tc.BuildAppBundle(context.Background(), "/proj", BuildArgs{}); err == nil {
			t.Fatal("expected error when artifact is missing")
		}
	})

	t.Run("build failure", func(t *testing.T) {
		runner := core.NewMockCommandRunner()
		runner.Errs["flutter"] = errors.New("exit status 1")

		tc := NewToolchain(core.NewMockFileSystem(), runner)
		if _, err := tc.BuildAppBundle(context.Background(), "/proj", BuildArgs{}); err == nil {
			t.Fatal("expected error when flutter fails")
		}
	})
}

func TestToolchain_BuildAPK(t *testing.T) {
	t.Run("split per abi finds all apks", func(t *testing.T) {
		mockFS := core.NewMockFileSystem()
		for _, name := range splitAPKNames {
			mockFS.SetFile(filepath.Join("/proj", APKDirRelPath, name), []byte("apk"))
		}
		runner := core.NewMockCommandRunner()

		tc := NewToolchain(mockFS, runner)
		artifacts, err := tc.BuildAPK(context.Background(), "/proj", BuildArgs{SplitPerABI: true})
		if err != nil {
			t.Fatalf("BuildAPK(): %v", err)
		}
		if len(artifacts) != len(splitAPKNames) {
			t.Errorf("len(artifacts) = %d, want %d", len(artifacts), len(splitAPKNames))
		}
	})

	t.Run("fat apk", func(t *testing.T) {
		mockFS := core.NewMockFileSystem()
		mockFS.SetFile(filepath.Join("/proj", APKDirRelPath, "app-release.apk"), []byte("apk"))

		tc := NewToolchain(mockFS, core.NewMockCommandRunner())
		artifacts, err := tc.BuildAPK(context.Background(), "/proj", BuildArgs{})
		if err != nil {
			t.Fatalf("BuildAPK(): %v", err)
		}
		if len(artifacts) != 1 {
			t.Errorf("len(artifacts) = %d, want 1", len(artifacts))
		}
	})

	t.Run("no apk produced", func(t *testing.T) {
		tc := NewToolchain(core.NewMockFileSystem(), core.NewMockCommandRunner())
		if _, err := tc.BuildAPK(context.Background(), "/proj", BuildArgs{SplitPerABI: true}); err == nil {
			t.Fatal("expected error when no apk exists")
		}
	})
}

func TestToolchain_Clean(t *testing.T) {
	mockFS := core.NewMockFileSystem()
	mockFS.SetFile(filepath.Join("/proj", BundleRelPath), []byte("aab"))
	runner := core.NewMockCommandRunner()

	tc := NewToolchain(mockFS, runner)
	if err := tc.Clean(context.Background(), "/proj"); err != nil {
		t.Fatalf("Clean(): %v", err)
	}
	if got := runner.Calls[0].String(); got != "flutter clean" {
		t.Errorf("invoked %q", got)
	}
	if _, ok := mockFS.GetFile(filepath.Join("/proj", BundleRelPath)); ok {
		t.Error("build artifacts were not removed")
	}
}

func TestToolchain_CheckInstalled(t *testing.T) {
	runner := core.NewMockCommandRunner()
	runner.MissingTools = []string{"flutter"}

	tc := NewToolchain(core.NewMockFileSystem(), runner)
	if err := tc.CheckInstalled(); err == nil {
		t.Fatal("expected error when flutter is missing")
	}
}

func TestToolchain_Version(t *testing.T) {
	runner := core.NewMockCommandRunner()
	runner.Outputs["flutter"] = "Flutter 3.24.0 • channel stable\nTools • Dart 3.5.0\n"

	tc := NewToolchain(core.NewMockFileSystem(), runner)
	got, err := tc.Version(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("Version(): %v", err)
	}
	if want := "Flutter 3.24.0 • channel stable"; got != want {
		t.Errorf("Version() = %q, want %q", got, want)
	}
}
