// Package bump implements the "bump" command: increment the build number
// in the manifest and propagate the new version into sync targets.
package bump

import (
	"context"
	"fmt"

	"github.com/droidship/droidship/internal/clix"
	"github.com/droidship/droidship/internal/parser"
	"github.com/droidship/droidship/internal/printer"
	"github.com/droidship/droidship/internal/pubspec"
	"github.com/urfave/cli/v3"
)

// Run returns the "bump" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "bump",
		Aliases:   []string{"version-bump"},
		Usage:     "Increment the build number, optionally replacing the version name",
		UsageText: "droidship bump [--name <new-name>] [--no-sync]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Usage: "Replace the version name (e.g. 1.2.3); the build number still increments",
			},
			&cli.BoolFlag{
				Name:  "no-sync",
				Usage: "Skip configured version sync targets",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runBump(ctx, env, cmd)
		},
	}
}

func runBump(ctx context.Context, env *clix.Env, cmd *cli.Command) error {
	root, cfg, err := clix.LoadProject(ctx, env, cmd)
	if err != nil {
		return err
	}

	manifestPath := cfg.ManifestPath(root)
	manager := pubspec.NewManager(env.FS)

	previous, err := manager.Read(ctx, manifestPath)
	if err != nil {
		return cli.Exit(printer.Error(err.Error()), 1)
	}

	next, err := manager.Bump(ctx, manifestPath, cmd.String("name"))
	if err != nil {
		return cli.Exit(printer.Error(err.Error()), 1)
	}

	printer.PrintSuccess(fmt.Sprintf("Bumped %s → %s", previous.String(), next.String()))

	if cmd.Bool("no-sync") || len(cfg.Sync) == 0 {
		return nil
	}
	return syncTargets(ctx, env, root, next, cfg.Sync)
}

func syncTargets(ctx context.Context, env *clix.Env, root string, version pubspec.AppVersion, targets []parser.Target) error {
	syncer := parser.NewSyncer(parser.NewReader(env.FS), parser.NewWriter(env.FS))

	results, err := syncer.Sync(ctx, root, version.String(), targets)
	for _, res := range results {
		switch {
		case res.Err != nil:
			printer.PrintError(fmt.Sprintf("sync %s: %v", res.Target.Path, res.Err))
		case res.Updated:
			printer.PrintInfo(fmt.Sprintf("Synced %s (%s → %s)", res.Target.Path, res.Previous, version.String()))
		default:
			printer.PrintFaint(fmt.Sprintf("%s already up to date", res.Target.Path))
		}
	}
	if err != nil {
		return cli.Exit(printer.Error(err.Error()), 1)
	}
	return nil
}
