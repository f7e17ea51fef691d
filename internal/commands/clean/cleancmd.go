// Package clean implements the "clean" command: flutter clean plus
// removal of release build outputs.
package clean

import (
	"context"

	"github.com/droidship/droidship/internal/clix"
	"github.com/droidship/droidship/internal/flutter"
	"github.com/droidship/droidship/internal/printer"
	"github.com/droidship/droidship/internal/tui"
	"github.com/urfave/cli/v3"
)

// Run returns the "clean" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "clean",
		Usage:     "Remove build outputs and caches",
		UsageText: "droidship clean",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runClean(ctx, env, cmd)
		},
	}
}

func runClean(ctx context.Context, env *clix.Env, cmd *cli.Command) error {
	root, err := clix.ProjectRoot(cmd)
	if err != nil {
		return err
	}

	toolchain := flutter.NewToolchain(env.FS, env.Runner)
	if err := toolchain.CheckInstalled(); err != nil {
		return cli.Exit(printer.Error(err.Error()), 1)
	}

	var cleanErr error
	if err := tui.WithSpinner(ctx, "Cleaning build outputs...", func() {
		cleanErr = toolchain.Clean(ctx, root)
	}); err != nil {
		return err
	}
	if cleanErr != nil {
		return cli.Exit(printer.Error(cleanErr.Error()), 1)
	}

	printer.PrintSuccess("Build outputs removed.")
	return nil
}
