// Package cli assembles the droidship root command.
package cli

import (
	"context"
	"fmt"

	"github.com/droidship/droidship/internal/clix"
	"github.com/droidship/droidship/internal/commands/build"
	"github.com/droidship/droidship/internal/commands/bump"
	"github.com/droidship/droidship/internal/commands/clean"
	"github.com/droidship/droidship/internal/commands/doctor"
	"github.com/droidship/droidship/internal/commands/setup"
	"github.com/droidship/droidship/internal/commands/validate"
	versioncmd "github.com/droidship/droidship/internal/commands/version"
	"github.com/droidship/droidship/internal/printer"
	"github.com/droidship/droidship/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

var noColorFlag bool

// New builds and returns the root CLI command, configuring all
// subcommands and flags for the droidship cli.
func New(env *clix.Env) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "droidship",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Release helper for Flutter Android apps",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "project",
				Aliases:     []string{"p"},
				Usage:       "Path to the Flutter project root",
				Sources:     urfavecli.EnvVars("DROIDSHIP_PROJECT"),
				DefaultText: "current directory",
			},
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(noColorFlag)
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			setup.Run(env),
			validate.Run(env),
			build.Run(env),
			build.RunAPK(env),
			versioncmd.Run(env),
			bump.Run(env),
			clean.Run(env),
			doctor.Run(env),
		},
	}
}
