// Package setup implements the "setup" command: generate the release
// keystore and its keystore.properties file.
package setup

import (
	"context"
	"errors"
	"fmt"

	"github.com/droidship/droidship/internal/clix"
	"github.com/droidship/droidship/internal/config"
	"github.com/droidship/droidship/internal/keystore"
	"github.com/droidship/droidship/internal/printer"
	"github.com/droidship/droidship/internal/signing"
	"github.com/droidship/droidship/internal/tui"
	"github.com/urfave/cli/v3"
)

// confirmReplace asks before overwriting an existing keystore. Tests
// stub it out.
var confirmReplace = tui.Confirm

// Run returns the "setup" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "setup",
		Usage:     "Generate the release keystore and signing properties",
		UsageText: "droidship setup [--alias name] [--validity days] [--dname dn] [--force]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "alias",
				Usage: "Key alias inside the keystore",
			},
			&cli.StringFlag{
				Name:  "store-password",
				Usage: "Keystore password (prompted when omitted)",
			},
			&cli.StringFlag{
				Name:  "key-password",
				Usage: "Key password (defaults to the store password)",
			},
			&cli.StringFlag{
				Name:  "dname",
				Usage: "Distinguished name, e.g. \"CN=myapp, O=acme\"",
			},
			&cli.IntFlag{
				Name:  "validity",
				Usage: "Certificate validity in days",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Replace an existing keystore",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runSetup(ctx, env, cmd)
		},
	}
}

func runSetup(ctx context.Context, env *clix.Env, cmd *cli.Command) error {
	root, cfg, err := clix.LoadProject(ctx, env, cmd)
	if err != nil {
		return err
	}

	ksCfg := cfg.KeystoreOrDefault()
	opts := keystore.Options{
		Alias:         firstNonEmpty(cmd.String("alias"), ksCfg.Alias),
		StorePassword: cmd.String("store-password"),
		KeyPassword:   cmd.String("key-password"),
		ValidityDays:  firstPositive(int(cmd.Int("validity")), ksCfg.ValidityDays),
		DName:         firstNonEmpty(cmd.String("dname"), ksCfg.DName),
		Force:         cmd.Bool("force"),
	}

	if opts.StorePassword == "" {
		opts.StorePassword, err = tui.PromptPassword("Keystore password")
		if err != nil {
			return err
		}
	}
	if opts.KeyPassword == "" {
		opts.KeyPassword = opts.StorePassword
	}

	generator := keystore.NewGenerator(env.FS, env.Runner)
	genErr := generator.Generate(ctx, root, opts)
	if errors.Is(genErr, keystore.ErrKeystoreExists) {
		// Offer to replace it; non-interactive sessions keep the refusal.
		replace, confirmErr := confirmReplace("Replace the existing keystore? Apps signed with it can no longer be updated.", false)
		if confirmErr != nil {
			return cli.Exit(printer.Error(confirmErr.Error()), 1)
		}
		if replace {
			opts.Force = true
			genErr = generator.Generate(ctx, root, opts)
		}
	}
	if genErr != nil {
		return cli.Exit(printer.Error(genErr.Error()), 1)
	}

	printer.PrintSuccess(fmt.Sprintf("Keystore created at %s", signing.KeystoreRelPath))
	printer.PrintSuccess(fmt.Sprintf("Signing properties written to %s", signing.PropertiesRelPath))
	printer.PrintWarning("Keep both files out of version control.")

	// Record the chosen keystore settings so later runs reuse them.
	if cfg.Keystore == nil {
		cfg.Keystore = &config.KeystoreConfig{
			Alias:        opts.Alias,
			ValidityDays: opts.ValidityDays,
			DName:        opts.DName,
		}
		if err := config.NewSaver(nil, nil, nil).Save(cfg, root); err != nil {
			printer.PrintWarning(fmt.Sprintf("could not save %s: %v", config.ConfigFileName, err))
		} else {
			printer.PrintInfo(fmt.Sprintf("Recorded keystore settings in %s", config.ConfigFileName))
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
