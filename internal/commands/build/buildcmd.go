// Package build implements the "build" and "build-apk" commands, which
// wrap flutter build for release artifacts.
package build

import (
	"context"
	"fmt"

	"github.com/droidship/droidship/internal/clix"
	"github.com/droidship/droidship/internal/commands/validate"
	"github.com/droidship/droidship/internal/config"
	"github.com/droidship/droidship/internal/flutter"
	"github.com/droidship/droidship/internal/printer"
	"github.com/droidship/droidship/internal/tui"
	"github.com/urfave/cli/v3"
)

// Run returns the "build" command (app bundle).
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "Build a signed release app bundle (.aab)",
		UsageText: "droidship build [--flavor name]",
		Flags:     buildFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runBuild(ctx, env, cmd, false)
		},
	}
}

// RunAPK returns the "build-apk" command (per-ABI APKs).
func RunAPK(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "build-apk",
		Usage:     "Build signed release APKs, split per ABI",
		UsageText: "droidship build-apk [--flavor name]",
		Flags:     buildFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runBuild(ctx, env, cmd, true)
		},
	}
}

func buildFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "flavor",
			Usage: "Product flavor to build",
		},
		&cli.BoolFlag{
			Name:  "no-validate",
			Usage: "Skip the signing configuration check",
		},
	}
}

func runBuild(ctx context.Context, env *clix.Env, cmd *cli.Command, apk bool) error {
	root, cfg, err := clix.LoadProject(ctx, env, cmd)
	if err != nil {
		return err
	}

	if !cmd.Bool("no-validate") {
		report, err := validate.Check(ctx, env, root)
		if err != nil {
			return err
		}
		if !report.Valid() {
			validate.RenderReport(report)
			return cli.Exit(printer.Error("refusing to build without signing configuration; run 'droidship setup'"), 1)
		}
	}

	toolchain := flutter.NewToolchain(env.FS, env.Runner)
	if err := toolchain.CheckInstalled(); err != nil {
		return cli.Exit(printer.Error(err.Error()), 1)
	}

	args := buildArgs(cfg, cmd, apk)

	var artifacts []string
	var buildErr error
	title := "Building release app bundle..."
	if apk {
		title = "Building release APKs..."
	}
	err = tui.WithSpinner(ctx, title, func() {
		if apk {
			artifacts, buildErr = toolchain.BuildAPK(ctx, root, args)
			return
		}
		var artifact string
		artifact, buildErr = toolchain.BuildAppBundle(ctx, root, args)
		if buildErr == nil {
			artifacts = []string{artifact}
		}
	})
	if err != nil {
		return err
	}
	if buildErr != nil {
		return cli.Exit(printer.Error(buildErr.Error()), 1)
	}

	for _, artifact := range artifacts {
		printer.PrintSuccess(fmt.Sprintf("Built %s", artifact))
	}
	return nil
}

func buildArgs(cfg *config.Config, cmd *cli.Command, apk bool) flutter.BuildArgs {
	buildCfg := cfg.BuildOrDefault()
	flavor := cmd.String("flavor")
	if flavor == "" {
		flavor = buildCfg.Flavor
	}
	return flutter.BuildArgs{
		SplitPerABI:    apk,
		Flavor:         flavor,
		Obfuscate:      buildCfg.Obfuscate,
		SplitDebugInfo: buildCfg.SplitDebugInfo,
	}
}
