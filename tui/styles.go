package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"vigil"
)

// Styles maps a Theme to lipgloss styles for the dashboard.
type Styles struct {
	UserMsg   lipgloss.Style
	Reasoning lipgloss.Style
	Alert     lipgloss.Style
	Good      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t vigil.Theme) Styles {
	return Styles{
		UserMsg:   lipgloss.NewStyle().Foreground(ansiColor(t.UserMsg)).Bold(true),
		Reasoning: lipgloss.NewStyle().Foreground(ansiColor(t.Reasoning)).Faint(true),
		Alert:     lipgloss.NewStyle().Foreground(ansiColor(t.Alert)),
		Good:      lipgloss.NewStyle().Foreground(ansiColor(t.Good)),
		Muted:     lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:    lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
