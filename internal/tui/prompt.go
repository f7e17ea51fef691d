package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// Confirm asks a yes/no question. In non-interactive environments it
// returns defaultValue without prompting.
func Confirm(title string, defaultValue bool) (bool, error) {
	if !IsInteractive() {
		return defaultValue, nil
	}

	value := defaultValue
	err := huh.NewConfirm().
		Title(title).
		Value(&value).
		Run()
	if err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return value, nil
}

// PromptPassword asks for a secret value with hidden echo. It fails in
// non-interactive environments: secrets must then come from flags.
func PromptPassword(title string) (string, error) {
	if !IsInteractive() {
		return "", fmt.Errorf("cannot prompt for %q in a non-interactive session", title)
	}

	var value string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Validate(func(s string) error {
			if len(s) < 6 {
				return fmt.Errorf("must be at least 6 characters")
			}
			return nil
		}).
		Value(&value).
		Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return value, nil
}

// WithSpinner runs action behind a spinner titled title. When stdout is
// not a TTY the action runs directly, so external tool output stays
// readable in logs.
func WithSpinner(ctx context.Context, title string, action func()) error {
	if !IsTTY() {
		action()
		return nil
	}
	return spinner.New().
		Title(title).
		Context(ctx).
		Action(action).
		Run()
}
