// Package ui holds posh's small set of cosmetic styles. None of them
// are ever applied to a byte sequence spec.md pins exactly: the "$ "
// prompt and built-in stdout text are always written unstyled.
package ui

import "github.com/charmbracelet/lipgloss"

// Styles is the set of styles the REPL applies to its own diagnostic
// output (never to command output or the prompt itself).
type Styles struct {
	Error lipgloss.Style
}

// New builds Styles for the given config color mode ("auto", "always",
// "never"). "auto" defers to lipgloss's own terminal detection, which
// already disables color when stdout isn't a tty.
func New(colorMode string) Styles {
	if colorMode == "never" {
		return Styles{Error: lipgloss.NewStyle()}
	}
	return Styles{
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}
