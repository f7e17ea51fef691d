package flutter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/droidship/droidship/internal/core"
)

// Artifact output locations, fixed by the Flutter tool.
const (
	// BundleRelPath is where flutter build appbundle writes the .aab.
	BundleRelPath = "build/app/outputs/bundle/release/app-release.aab"

	// APKDirRelPath is where flutter build apk writes release APKs.
	APKDirRelPath = "build/app/outputs/flutter-apk"
)

// Per-ABI APK names produced by --split-per-abi.
var splitAPKNames = []string{
	"app-armeabi-v7a-release.apk",
	"app-arm64-v8a-release.apk",
	"app-x86_64-release.apk",
}

// BuildArgs holds the options for a flutter build invocation.
type BuildArgs struct {
	// Target is the build target: "appbundle" or "apk".
	Target string

	// SplitPerABI adds --split-per-abi (apk target only).
	SplitPerABI bool

	// Obfuscate adds --obfuscate with debug info split to splitDebugInfo.
	Obfuscate      bool
	SplitDebugInfo string

	// Flavor selects a product flavor, when the project defines one.
	Flavor string
}

// BuildCommandArgs constructs the argument list for flutter build.
func BuildCommandArgs(args BuildArgs) []string {
	cmdArgs := []string{"build", args.Target, "--release"}

	if args.SplitPerABI {
		cmdArgs = append(cmdArgs, "--split-per-abi")
	}
	if args.Flavor != "" {
		cmdArgs = append(cmdArgs, "--flavor", args.Flavor)
	}
	if args.Obfuscate {
		cmdArgs = append(cmdArgs, "--obfuscate")
		if args.SplitDebugInfo != "" {
			cmdArgs = append(cmdArgs, "--split-debug-info", args.SplitDebugInfo)
		}
	}

	return cmdArgs
}

// Toolchain wraps the external flutter binary.
type Toolchain struct {
	fs     core.FileSystem
	runner core.CommandRunner
}

// NewToolchain creates a Toolchain with the given filesystem and runner.
func NewToolchain(fs core.FileSystem, runner core.CommandRunner) *Toolchain {
	return &Toolchain{fs: fs, runner: runner}
}

// CheckInstalled fails when the flutter binary is not on PATH.
func (t *Toolchain) CheckInstalled() error {
	if _, err := t.runner.LookPath("flutter"); err != nil {
		return fmt.Errorf("flutter not found on PATH: %w", err)
	}
	return nil
}

// BuildAppBundle runs flutter build appbundle in projectRoot and returns
// the absolute path of the produced bundle.
func (t *Toolchain) BuildAppBundle(ctx context.Context, projectRoot string, args BuildArgs) (string, error) {
	args.Target = "appbundle"
	args.SplitPerABI = false

	if err := t.runner.Run(ctx, projectRoot, "flutter", BuildCommandArgs(args)...); err != nil {
		return "", fmt.Errorf("app bundle build failed: %w", err)
	}

	artifact := filepath.Join(projectRoot, BundleRelPath)
	if _, err := t.fs.Stat(ctx, artifact); err != nil {
		return "", fmt.Errorf("build reported success but %q is missing: %w", artifact, err)
	}
	return artifact, nil
}

// BuildAPK runs flutter build apk in projectRoot and returns the absolute
// paths of the produced APKs.
func (t *Toolchain) BuildAPK(ctx context.Context, projectRoot string, args BuildArgs) ([]string, error) {
	args.Target = "apk"

	if err := t.runner.Run(ctx, projectRoot, "flutter", BuildCommandArgs(args)...); err != nil {
		return nil, fmt.Errorf("apk build failed: %w", err)
	}

	names := []string{"app-release.apk"}
	if args.SplitPerABI {
		names = splitAPKNames
	}

	var artifacts []string
	for _, name := range names {
		path := filepath.Join(projectRoot, APKDirRelPath, name)
		if _, err := t.fs.Stat(ctx, path); err == nil {
			artifacts = append(artifacts, path)
		}
	}
	if len(artifacts) == 0 {
		return nil, fmt.Errorf("build reported success but no apk found under %q",
			filepath.Join(projectRoot, APKDirRelPath))
	}
	return artifacts, nil
}

// Clean runs flutter clean and removes droidship build outputs.
func (t *Toolchain) Clean(ctx context.Context, projectRoot string) error {
	if err := t.runner.Run(ctx, projectRoot, "flutter", "clean"); err != nil {
		return fmt.Errorf("flutter clean failed: %w", err)
	}
	if err := t.fs.RemoveAll(ctx, filepath.Join(projectRoot, "build")); err != nil {
		return fmt.Errorf("failed to remove build directory: %w", err)
	}
	return nil
}

// Version returns the first line of flutter --version output.
func (t *Toolchain) Version(ctx context.Context, projectRoot string) (string, error) {
	out, err := t.runner.RunOutput(ctx, projectRoot, "flutter", "--version")
	if err != nil {
		return "", err
	}
	return firstLine(out), nil
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			return s[:i]
		}
	}
	return s
}
