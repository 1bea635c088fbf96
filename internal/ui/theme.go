package ui

import (
	"github.com/charmbracelet/huh"

	"github.com/iiroan/blue/internal/theme"
)

// HuhTheme returns the active form theme.
func HuhTheme() *huh.Theme {
	if CurrentPreferences.NoColor {
		return huh.ThemeBase()
	}
	return theme.FormTheme(CurrentTheme)
}
