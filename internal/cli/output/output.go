// Package output provides terminal detection and the lipgloss styles shared
// by the CLI commands.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Styles holds the lipgloss styles used for CLI output. When Enabled is
// false every style is a no-op and output stays plain.
type Styles struct {
	Enabled bool

	Title   lipgloss.Style
	Target  lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles builds the style set. Pass enabled=false for plain output.
func NewStyles(enabled bool) Styles {
	if !enabled {
		plain := lipgloss.NewStyle()
		return Styles{Title: plain, Target: plain, Muted: plain, Success: plain, Error: plain}
	}
	return Styles{
		Enabled: true,
		Title:   lipgloss.NewStyle().Bold(true),
		Target:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// ColorEnabled reports whether styled output should be used: stdout is a
// terminal and color has not been disabled by flag or NO_COLOR.
func ColorEnabled(noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
