package keystore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/droidship/droidship/internal/core"
	"github.com/droidship/droidship/internal/signing"
)

// Options configures keystore generation.
type Options struct {
	Alias         string
	StorePassword string
	KeyPassword   string
	ValidityDays  int
	DName         string

	// Force overwrites an existing keystore instead of failing.
	Force bool
}

// ErrKeystoreExists is returned when the keystore is already present and
// Force is not set. Overwriting an existing keystore would orphan every
// app release signed with it, so the caller must opt in explicitly.
var ErrKeystoreExists = errors.New("keystore already exists")

// Generator creates a release keystore via the external keytool binary
// and writes the matching keystore.properties file.
type Generator struct {
	fs     core.FileSystem
	runner core.CommandRunner
}

// NewGenerator creates a Generator with the given filesystem and runner.
func NewGenerator(fs core.FileSystem, runner core.CommandRunner) *Generator {
	return &Generator{fs: fs, runner: runner}
}

// Generate creates the keystore at the fixed signing path under
// projectRoot and writes keystore.properties next to it.
func (g *Generator) Generate(ctx context.Context, projectRoot string, opts Options) error {
	if _, err := g.runner.LookPath("keytool"); err != nil {
		return fmt.Errorf("keytool not found on PATH (is a JDK installed?): %w", err)
	}

	storePath := filepath.Join(projectRoot, signing.KeystoreRelPath)
	if _, err := g.fs.Stat(ctx, storePath); err == nil && !opts.Force {
		return fmt.Errorf("%w at %q (use --force to replace it)", ErrKeystoreExists, storePath)
	}

	if err := g.fs.MkdirAll(ctx, filepath.Dir(storePath), core.PermDir); err != nil {
		return fmt.Errorf("failed to create keystore directory: %w", err)
	}

	args := BuildGenKeyArgs(KeytoolArgs{
		StorePath:     storePath,
		Alias:         opts.Alias,
		StorePassword: opts.StorePassword,
		KeyPassword:   opts.KeyPassword,
		ValidityDays:  opts.ValidityDays,
		DName:         opts.DName,
	})
	if err := g.runner.Run(ctx, projectRoot, "keytool", args...); err != nil {
		return fmt.Errorf("keystore generation failed: %w", err)
	}

	props := Properties{
		StorePassword: opts.StorePassword,
		KeyPassword:   opts.KeyPassword,
		KeyAlias:      orDefault(opts.Alias, DefaultAlias),
		StoreFile:     storeFileForGradle(),
	}
	propsPath := filepath.Join(projectRoot, signing.PropertiesRelPath)
	if err := g.fs.WriteFile(ctx, propsPath, []byte(props.Render()), core.PermSecretRW); err != nil {
		return fmt.Errorf("failed to write %q: %w", propsPath, err)
	}

	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// storeFileForGradle returns the keystore path relative to the android/
// directory, which is where Gradle resolves storeFile from.
func storeFileForGradle() string {
	rel, err := filepath.Rel(filepath.Dir(signing.PropertiesRelPath), signing.KeystoreRelPath)
	if err != nil {
		return signing.KeystoreRelPath
	}
	return filepath.ToSlash(rel)
}
