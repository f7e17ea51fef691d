// Package version implements the "version" command: show or set the app
// version declared in the manifest.
package version

import (
	"context"
	"fmt"

	"github.com/droidship/droidship/internal/clix"
	"github.com/droidship/droidship/internal/printer"
	"github.com/droidship/droidship/internal/pubspec"
	"github.com/urfave/cli/v3"
)

// Run returns the "version" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "version",
		Usage:     "Show the app version declared in the manifest",
		UsageText: "droidship version [set <name>+<build>]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runShow(ctx, env, cmd)
		},
		Commands: []*cli.Command{
			setCmd(env),
		},
	}
}

func runShow(ctx context.Context, env *clix.Env, cmd *cli.Command) error {
	root, cfg, err := clix.LoadProject(ctx, env, cmd)
	if err != nil {
		return err
	}

	manager := pubspec.NewManager(env.FS)
	current, err := manager.Read(ctx, cfg.ManifestPath(root))
	if err != nil {
		return cli.Exit(printer.Error(err.Error()), 1)
	}

	fmt.Println(current.String())
	return nil
}

func setCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Write an explicit version into the manifest",
		UsageText: "droidship version set <name>+<build>",
		ArgsUsage: "<name>+<build>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runSet(ctx, env, cmd)
		},
	}
}

func runSet(ctx context.Context, env *clix.Env, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return cli.Exit(printer.Error("usage: droidship version set <name>+<build>"), 1)
	}

	next, err := pubspec.ParseVersion(cmd.Args().First())
	if err != nil {
		return cli.Exit(printer.Error(err.Error()), 1)
	}

	root, cfg, err := clix.LoadProject(ctx, env, cmd)
	if err != nil {
		return err
	}

	manager := pubspec.NewManager(env.FS)
	if err := manager.Set(ctx, cfg.ManifestPath(root), next); err != nil {
		return cli.Exit(printer.Error(err.Error()), 1)
	}

	printer.PrintSuccess(fmt.Sprintf("Version set to %s", next.String()))
	return nil
}
