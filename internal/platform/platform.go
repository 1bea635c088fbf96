// Package platform answers questions about the host terminal.
package platform

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// ColorSchemeEnv overrides color scheme detection when set to light or dark.
const ColorSchemeEnv = "BLUE_COLOR_SCHEME"

// Probe holds the host queries used for detection.
type Probe struct {
	Getenv            func(string) string
	IsTerminal        func() bool
	HasDarkBackground func() bool
}

// DefaultProbe queries the real process environment and stdout.
func DefaultProbe() Probe {
	return Probe{
		Getenv:            os.Getenv,
		IsTerminal:        IsInteractiveTerminal,
		HasDarkBackground: lipgloss.HasDarkBackground,
	}
}

// ColorScheme returns "light", "dark", or "" when the host gives no answer.
func (p Probe) ColorScheme() string {
	switch v := strings.ToLower(strings.TrimSpace(p.Getenv(ColorSchemeEnv))); v {
	case "light", "dark":
		return v
	}
	if !p.IsTerminal() {
		return ""
	}
	if p.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// ColorScheme reports the host color scheme using DefaultProbe.
func ColorScheme() string {
	return DefaultProbe().ColorScheme()
}

// IsInteractiveTerminal reports whether stdout is a terminal a person is
// likely looking at.
func IsInteractiveTerminal() bool {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return false
	}
	if os.Getenv("TERM") == "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// TerminalWidth returns the width of stdout, or fallback when it is not a
// terminal.
func TerminalWidth(fallback int) int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
