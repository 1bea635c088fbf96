package theme

import (
	"strings"

	"github.com/iiroan/blue/internal/settings"
)

// Scheme is the color scheme reported by the host. The zero value means
// the host did not report one.
type Scheme string

const (
	SchemeUnknown Scheme = ""
	SchemeLight   Scheme = "light"
	SchemeDark    Scheme = "dark"
)

// ParseScheme normalizes a host scheme string. Anything other than light
// or dark is unknown.
func ParseScheme(v string) Scheme {
	switch Scheme(strings.ToLower(strings.TrimSpace(v))) {
	case SchemeLight:
		return SchemeLight
	case SchemeDark:
		return SchemeDark
	default:
		return SchemeUnknown
	}
}

// Status bar content styles.
const (
	StatusBarLight = "light-content"
	StatusBarDark  = "dark-content"
)

// Theme is the resolved presentation state. Mode is the effective mode,
// so two inputs that resolve the same way yield equal themes.
type Theme struct {
	Mode           settings.ThemeMode `json:"mode"`
	IsDark         bool               `json:"isDark"`
	Colors         Palette            `json:"colors"`
	StatusBarStyle string             `json:"statusBarStyle"`
}

// Resolve returns the effective mode, always light or dark. The system
// preference follows the host and falls back to light when the host is
// silent.
func Resolve(mode settings.ThemeMode, scheme Scheme) settings.ThemeMode {
	switch mode {
	case settings.ThemeDark:
		return settings.ThemeDark
	case settings.ThemeSystem:
		if scheme == SchemeDark {
			return settings.ThemeDark
		}
	}
	return settings.ThemeLight
}

// Derive builds the full theme. Derive is pure.
func Derive(mode settings.ThemeMode, scheme Scheme) Theme {
	effective := Resolve(mode, scheme)
	t := Theme{Mode: effective, IsDark: effective == settings.ThemeDark}
	if t.IsDark {
		t.Colors = DarkPalette()
		t.StatusBarStyle = StatusBarLight
	} else {
		t.Colors = LightPalette()
		t.StatusBarStyle = StatusBarDark
	}
	return t
}

// Name returns "dark" or "light".
func (t Theme) Name() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}
