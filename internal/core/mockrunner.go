package core

import (
	"context"
	"fmt"
	"strings"
)

// RunnerCall records a single invocation made through MockCommandRunner.
type RunnerCall struct {
	Dir  string
	Name string
	Args []string
}

// String renders the call as a shell-like command line.
func (c RunnerCall) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// MockCommandRunner is a CommandRunner for tests. It records every call
// and can fail or return canned output per executable name.
type MockCommandRunner struct {
	Calls []RunnerCall

	// Outputs maps executable name to the stdout RunOutput returns.
	Outputs map[string]string

	// Errs maps executable name to an error returned by Run/RunOutput.
	Errs map[string]error

	// MissingTools lists executable names LookPath reports as absent.
	MissingTools []string
}

// NewMockCommandRunner creates an empty MockCommandRunner.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{
		Outputs: make(map[string]string),
		Errs:    make(map[string]error),
	}
}

// Verify MockCommandRunner implements CommandRunner.
var _ CommandRunner = (*MockCommandRunner)(nil)

func (m *MockCommandRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.Calls = append(m.Calls, RunnerCall{Dir: dir, Name: name, Args: args})
	if err, ok := m.Errs[name]; ok {
		return err
	}
	return nil
}

func (m *MockCommandRunner) RunOutput(ctx context.Context, dir, name string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.Calls = append(m.Calls, RunnerCall{Dir: dir, Name: name, Args: args})
	if err, ok := m.Errs[name]; ok {
		return "", err
	}
	return m.Outputs[name], nil
}

func (m *MockCommandRunner) LookPath(name string) (string, error) {
	for _, missing := range m.MissingTools {
		if missing == name {
			return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
		}
	}
	return "/usr/bin/" + name, nil
}

// CalledWith reports whether any recorded call used the given executable.
func (m *MockCommandRunner) CalledWith(name string) bool {
	for _, c := range m.Calls {
		if c.Name == name {
			return true
		}
	}
	return false
}
