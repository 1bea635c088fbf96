// Package ui provides Charm-based rendering helpers for the blue CLI
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iiroan/blue/internal/theme"
)

// Log warnings have no palette role of their own.
var warningColor = lipgloss.Color("#F59E0B")

// Styles holds every lipgloss style the CLI renders with.
type Styles struct {
	Header  lipgloss.Style
	Tagline lipgloss.Style

	GroupTitle lipgloss.Style
	Key        lipgloss.Style
	Value      lipgloss.Style
	Muted      lipgloss.Style

	Success, Error lipgloss.Style
}

// NewStyles derives styles from t. With noColor every style keeps its
// layout but drops colors.
func NewStyles(t theme.Theme, noColor bool) Styles {
	c := t.Colors
	color := func(s lipgloss.Style, fg lipgloss.Color) lipgloss.Style {
		if noColor {
			return s
		}
		return s.Foreground(fg)
	}
	fill := func(s lipgloss.Style, fg, bg lipgloss.Color) lipgloss.Style {
		if noColor {
			return s
		}
		return s.Foreground(fg).Background(bg)
	}

	return Styles{
		Header:  fill(lipgloss.NewStyle().Padding(0, 1).Bold(true), c.HeaderText, c.HeaderBackground),
		Tagline: color(lipgloss.NewStyle().Italic(true), c.Secondary),

		GroupTitle: color(lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1), c.Primary),
		Key:        color(lipgloss.NewStyle(), c.Text),
		Value:      color(lipgloss.NewStyle().Bold(true), c.TabBarActive),
		Muted:      color(lipgloss.NewStyle(), c.TabBarInactive),

		Success: color(lipgloss.NewStyle().Bold(true), c.Positive),
		Error:   color(lipgloss.NewStyle().Bold(true), c.Negative),
	}
}
