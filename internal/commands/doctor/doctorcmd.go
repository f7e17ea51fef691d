// Package doctor implements the "doctor" command: diagnose the local
// environment and project before a release.
package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/droidship/droidship/internal/clix"
	"github.com/droidship/droidship/internal/config"
	"github.com/droidship/droidship/internal/flutter"
	"github.com/droidship/droidship/internal/printer"
	"github.com/droidship/droidship/internal/pubspec"
	"github.com/droidship/droidship/internal/signing"
	"github.com/goccy/go-yaml"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

// checkResult is the outcome of a single diagnosis step.
type checkResult struct {
	Name    string
	Passed  bool
	Warning bool
	Detail  string
}

// Run returns the "doctor" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "doctor",
		Usage:     "Diagnose the environment and project setup",
		UsageText: "droidship doctor",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDoctor(ctx, env, cmd)
		},
	}
}

func runDoctor(ctx context.Context, env *clix.Env, cmd *cli.Command) error {
	root, err := clix.ProjectRoot(cmd)
	if err != nil {
		return err
	}

	results := diagnose(ctx, env, root)
	render(results)

	for _, r := range results {
		if !r.Passed && !r.Warning {
			return cli.Exit(printer.Error("doctor found problems"), 1)
		}
	}
	printer.PrintSuccess("Everything looks ready for a release.")
	return nil
}

// diagnose runs all checks and returns their results in a fixed order.
func diagnose(ctx context.Context, env *clix.Env, root string) []checkResult {
	var results []checkResult

	// External tools.
	toolchain := flutter.NewToolchain(env.FS, env.Runner)
	if err := toolchain.CheckInstalled(); err != nil {
		results = append(results, checkResult{Name: "flutter", Detail: err.Error()})
	} else {
		detail, verErr := toolchain.Version(ctx, root)
		if verErr != nil {
			detail = "installed"
		}
		results = append(results, checkResult{Name: "flutter", Passed: true, Detail: detail})
	}

	if _, err := env.Runner.LookPath("keytool"); err != nil {
		results = append(results, checkResult{Name: "keytool", Detail: "not on PATH (install a JDK)"})
	} else {
		results = append(results, checkResult{Name: "keytool", Passed: true, Detail: "on PATH"})
	}

	// Project configuration.
	cfg, err := config.Load(ctx, env.FS, root)
	if err != nil {
		results = append(results, checkResult{Name: "config", Detail: err.Error()})
		cfg = config.Default()
	} else {
		results = append(results, checkResult{Name: "config", Passed: true, Detail: config.ConfigFileName + " ok"})
	}

	results = append(results, checkManifest(ctx, env, cfg.ManifestPath(root)))
	results = append(results, checkSigning(ctx, env, root)...)

	return results
}

// checkManifest verifies the manifest parses as YAML and carries a
// well-formed version line.
func checkManifest(ctx context.Context, env *clix.Env, manifestPath string) checkResult {
	data, err := env.FS.ReadFile(ctx, manifestPath)
	if err != nil {
		return checkResult{Name: "manifest", Detail: fmt.Sprintf("cannot read %s", manifestPath)}
	}

	var doc struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return checkResult{Name: "manifest", Detail: fmt.Sprintf("not valid YAML: %v", err)}
	}

	current, err := pubspec.NewManager(env.FS).Read(ctx, manifestPath)
	if err != nil {
		return checkResult{Name: "manifest", Detail: err.Error()}
	}

	detail := current.String()
	if doc.Name != "" {
		detail = fmt.Sprintf("%s %s", doc.Name, detail)
	}
	return checkResult{Name: "manifest", Passed: true, Detail: detail}
}

// checkSigning reports missing signing files as warnings: a fresh clone
// is healthy, it just has not run setup yet.
func checkSigning(ctx context.Context, env *clix.Env, root string) []checkResult {
	report, err := signing.NewValidator(env.FS).Validate(ctx, root)
	if err != nil {
		return []checkResult{{Name: "signing", Detail: err.Error()}}
	}

	var results []checkResult
	for _, c := range report.Checks {
		result := checkResult{Name: string(c.Kind), Passed: c.Present, Warning: !c.Present, Detail: c.Path}
		if !c.Present {
			result.Detail = c.Path + " (run 'droidship setup')"
		}
		results = append(results, result)
	}
	return results
}

func render(results []checkResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Check", "Status", "Detail"})
	for _, r := range results {
		status := printer.Success("ok")
		switch {
		case !r.Passed && r.Warning:
			status = printer.Warning("warn")
		case !r.Passed:
			status = printer.Error("fail")
		}
		t.AppendRow(table.Row{r.Name, status, r.Detail})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
