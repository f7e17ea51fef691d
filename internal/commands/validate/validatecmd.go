// Package validate implements the "validate" command: a presence report
// for the release-signing files.
package validate

import (
	"context"
	"os"

	"github.com/droidship/droidship/internal/clix"
	"github.com/droidship/droidship/internal/printer"
	"github.com/droidship/droidship/internal/signing"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

// Run returns the "validate" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Check that the signing configuration is in place",
		UsageText: "droidship validate",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runValidate(ctx, env, cmd)
		},
	}
}

func runValidate(ctx context.Context, env *clix.Env, cmd *cli.Command) error {
	root, err := clix.ProjectRoot(cmd)
	if err != nil {
		return err
	}

	report, err := Check(ctx, env, root)
	if err != nil {
		return err
	}

	RenderReport(report)

	if !report.Valid() {
		return cli.Exit(printer.Error("signing configuration is incomplete; run 'droidship setup'"), 1)
	}
	printer.PrintSuccess("Signing configuration is complete.")
	return nil
}

// Check runs the signing validator for the given project root. It is
// shared with the build commands, which refuse to build unsigned.
func Check(ctx context.Context, env *clix.Env, projectRoot string) (*signing.Report, error) {
	return signing.NewValidator(env.FS).Validate(ctx, projectRoot)
}

// RenderReport prints the presence report as a table.
func RenderReport(report *signing.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Check", "Path", "Status"})
	for _, c := range report.Checks {
		status := printer.Success("present")
		if !c.Present {
			status = printer.Error("missing")
		}
		t.AppendRow(table.Row{string(c.Kind), c.Path, status})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
