package ui

import (
	"github.com/iiroan/blue/internal/settings"
	"github.com/iiroan/blue/internal/theme"
)

// Preferences controls runtime UI settings.
type Preferences struct {
	NoColor bool
	Dense   bool
}

// Active UI state. Apply replaces all three together.
var (
	CurrentPreferences Preferences
	CurrentTheme       = theme.Derive(settings.ThemeLight, theme.SchemeUnknown)
	Current            = NewStyles(CurrentTheme, false)
)

// Apply switches the active theme and preferences.
func Apply(t theme.Theme, p Preferences) {
	CurrentPreferences = p
	CurrentTheme = t
	Current = NewStyles(t, p.NoColor)
}
