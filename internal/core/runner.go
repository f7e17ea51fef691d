package core

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner abstracts external tool invocation so commands can be
// tested without spawning processes.
type CommandRunner interface {
	// Run executes a command in dir and streams its output to the terminal.
	Run(ctx context.Context, dir, name string, args ...string) error

	// RunOutput executes a command in dir and returns its captured stdout.
	RunOutput(ctx context.Context, dir, name string, args ...string) (string, error)

	// LookPath reports whether an executable is available on PATH.
	LookPath(name string) (string, error)
}

// OSCommandRunner implements CommandRunner using os/exec.
type OSCommandRunner struct{}

// NewOSCommandRunner returns a CommandRunner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Verify OSCommandRunner implements CommandRunner.
var _ CommandRunner = (*OSCommandRunner)(nil)

func (r *OSCommandRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

func (r *OSCommandRunner) RunOutput(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrMsg := strings.TrimSpace(stderr.String())
		if stderrMsg != "" {
			return "", fmt.Errorf("%s: %w", stderrMsg, err)
		}
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return stdout.String(), nil
}

func (r *OSCommandRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
