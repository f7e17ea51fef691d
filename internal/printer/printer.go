// Package printer renders droidship's console output with a small,
// fixed palette. All color goes through here so --no-color has a single
// switch to flip.
package printer

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// SetNoColor switches between plain output and the terminal's detected
// color profile.
func SetNoColor(noColor bool) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}

// Faint styles text as de-emphasized.
func Faint(text string) string {
	return faintStyle.Render(text)
}

// Bold styles text as emphasized.
func Bold(text string) string {
	return boldStyle.Render(text)
}

// Success styles text green.
func Success(text string) string {
	return successStyle.Render(text)
}

// Error styles text red.
func Error(text string) string {
	return errorStyle.Render(text)
}

// Warning styles text yellow.
func Warning(text string) string {
	return warningStyle.Render(text)
}

// Info styles text cyan.
func Info(text string) string {
	return infoStyle.Render(text)
}

// PrintFaint prints a de-emphasized line.
func PrintFaint(text string) {
	fmt.Println(Faint(text))
}

// PrintBold prints an emphasized line.
func PrintBold(text string) {
	fmt.Println(Bold(text))
}

// PrintSuccess prints a green line.
func PrintSuccess(text string) {
	fmt.Println(Success(text))
}

// PrintError prints a red line.
func PrintError(text string) {
	fmt.Println(Error(text))
}

// PrintWarning prints a yellow line.
func PrintWarning(text string) {
	fmt.Println(Warning(text))
}

// PrintInfo prints a cyan line.
func PrintInfo(text string) {
	fmt.Println(Info(text))
}
