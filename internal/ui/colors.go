package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/iiroan/blue/internal/theme"
)

// LogStyles returns charm log styles with level badges colored from t.
func LogStyles(t theme.Theme, noColor bool) *log.Styles {
	styles := log.DefaultStyles()
	if noColor {
		return styles
	}

	c := t.Colors
	badge := func(label string, fg lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().SetString(label).Foreground(fg).Bold(true)
	}
	styles.Levels[log.DebugLevel] = badge("DEBUG", c.TabBarInactive)
	styles.Levels[log.InfoLevel] = badge("INFO", c.Primary)
	styles.Levels[log.WarnLevel] = badge("WARN", warningColor)
	styles.Levels[log.ErrorLevel] = badge("ERROR", c.Negative)
	styles.Key = styles.Key.Foreground(c.Secondary)
	return styles
}
