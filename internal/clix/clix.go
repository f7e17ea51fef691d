// Package clix holds the execution environment shared by all droidship
// subcommands: the filesystem and process-runner seams plus project-root
// resolution from the CLI surface.
package clix

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/droidship/droidship/internal/config"
	"github.com/droidship/droidship/internal/core"
	"github.com/urfave/cli/v3"
)

// Env bundles the seams commands operate through. Production code uses
// NewEnv; tests inject mocks.
type Env struct {
	FS     core.FileSystem
	Runner core.CommandRunner
}

// NewEnv returns an Env backed by the real filesystem and os/exec.
func NewEnv() *Env {
	return &Env{
		FS:     core.NewOSFileSystem(),
		Runner: core.NewOSCommandRunner(),
	}
}

// ProjectRoot resolves the project root from the --project flag (or its
// DROIDSHIP_PROJECT source) to an absolute path. The root is threaded
// explicitly from here into every component; nothing reads the
// environment after this point.
func ProjectRoot(cmd *cli.Command) (string, error) {
	root := cmd.String("project")
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("cannot resolve project root %q: %w", root, err)
	}
	return abs, nil
}

// LoadProject resolves the project root and loads its configuration.
func LoadProject(ctx context.Context, env *Env, cmd *cli.Command) (string, *config.Config, error) {
	root, err := ProjectRoot(cmd)
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.Load(ctx, env.FS, root)
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}
