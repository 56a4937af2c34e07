package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/courtside/scout"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Topic      lipgloss.Style
	Step       lipgloss.Style
	Suggestion lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Muted      lipgloss.Style
	Accent     lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t scout.Theme) Styles {
	return Styles{
		Topic:      lipgloss.NewStyle().Foreground(ansiColor(t.Topic)).Bold(true),
		Step:       lipgloss.NewStyle().Foreground(ansiColor(t.Step)).Faint(true),
		Suggestion: lipgloss.NewStyle().Foreground(ansiColor(t.Suggestion)),
		Error:      lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success:    lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:      lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:     lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
