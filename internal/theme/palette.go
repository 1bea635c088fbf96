// Package theme derives the color palette and status bar style from the
// theme preference and the host color scheme.
package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette defines the color roles used by every screen.
type Palette struct {
	Background        lipgloss.Color `json:"background"`
	Text              lipgloss.Color `json:"text"`
	Primary           lipgloss.Color `json:"primary"`
	Secondary         lipgloss.Color `json:"secondary"`
	Card              lipgloss.Color `json:"card"`
	Border            lipgloss.Color `json:"border"`
	Notification      lipgloss.Color `json:"notification"`
	Positive          lipgloss.Color `json:"positive"`
	Negative          lipgloss.Color `json:"negative"`
	StatusBarBg       lipgloss.Color `json:"statusBarBg"`
	SurfaceBackground lipgloss.Color `json:"surfaceBackground"`
	SurfaceText       lipgloss.Color `json:"surfaceText"`
	ButtonBackground  lipgloss.Color `json:"buttonBackground"`
	ButtonText        lipgloss.Color `json:"buttonText"`
	InputBackground   lipgloss.Color `json:"inputBackground"`
	InputText         lipgloss.Color `json:"inputText"`
	HeaderBackground  lipgloss.Color `json:"headerBackground"`
	HeaderText        lipgloss.Color `json:"headerText"`
	TabBarBackground  lipgloss.Color `json:"tabBarBackground"`
	TabBarActive      lipgloss.Color `json:"tabBarActive"`
	TabBarInactive    lipgloss.Color `json:"tabBarInactive"`
	CardBackground    lipgloss.Color `json:"cardBackground"`
	CardText          lipgloss.Color `json:"cardText"`
	Divider           lipgloss.Color `json:"divider"`
}

// Role is a named palette entry.
type Role struct {
	Name  string
	Color lipgloss.Color
}

// Roles lists the palette entries in a stable order.
func (p Palette) Roles() []Role {
	return []Role{
		{"background", p.Background},
		{"text", p.Text},
		{"primary", p.Primary},
		{"secondary", p.Secondary},
		{"card", p.Card},
		{"border", p.Border},
		{"notification", p.Notification},
		{"positive", p.Positive},
		{"negative", p.Negative},
		{"statusBarBg", p.StatusBarBg},
		{"surfaceBackground", p.SurfaceBackground},
		{"surfaceText", p.SurfaceText},
		{"buttonBackground", p.ButtonBackground},
		{"buttonText", p.ButtonText},
		{"inputBackground", p.InputBackground},
		{"inputText", p.InputText},
		{"headerBackground", p.HeaderBackground},
		{"headerText", p.HeaderText},
		{"tabBarBackground", p.TabBarBackground},
		{"tabBarActive", p.TabBarActive},
		{"tabBarInactive", p.TabBarInactive},
		{"cardBackground", p.CardBackground},
		{"cardText", p.CardText},
		{"divider", p.Divider},
	}
}

// LightPalette returns the light color table.
func LightPalette() Palette {
	return Palette{
		Background:        lipgloss.Color("#FFFFFF"),
		Text:              lipgloss.Color("#000000"),
		Primary:           lipgloss.Color("#1E3A8A"),
		Secondary:         lipgloss.Color("#64748B"),
		Card:              lipgloss.Color("#F1F5F9"),
		Border:            lipgloss.Color("#E2E8F0"),
		Notification:      lipgloss.Color("#EF4444"),
		Positive:          lipgloss.Color("#10B981"),
		Negative:          lipgloss.Color("#EF4444"),
		StatusBarBg:       lipgloss.Color("#FFFFFF"),
		SurfaceBackground: lipgloss.Color("#F8FAFC"),
		SurfaceText:       lipgloss.Color("#1E293B"),
		ButtonBackground:  lipgloss.Color("#1E3A8A"),
		ButtonText:        lipgloss.Color("#FFFFFF"),
		InputBackground:   lipgloss.Color("#F1F5F9"),
		InputText:         lipgloss.Color("#1E293B"),
		HeaderBackground:  lipgloss.Color("#1E3A8A"),
		HeaderText:        lipgloss.Color("#FFFFFF"),
		TabBarBackground:  lipgloss.Color("#FFFFFF"),
		TabBarActive:      lipgloss.Color("#1E3A8A"),
		TabBarInactive:    lipgloss.Color("#94A3B8"),
		CardBackground:    lipgloss.Color("#FFFFFF"),
		CardText:          lipgloss.Color("#1E293B"),
		Divider:           lipgloss.Color("#E2E8F0"),
	}
}

// DarkPalette returns the dark color table.
func DarkPalette() Palette {
	return Palette{
		Background:        lipgloss.Color("#121212"),
		Text:              lipgloss.Color("#E2E8F0"),
		Primary:           lipgloss.Color("#3B82F6"),
		Secondary:         lipgloss.Color("#94A3B8"),
		Card:              lipgloss.Color("#1E293B"),
		Border:            lipgloss.Color("#334155"),
		Notification:      lipgloss.Color("#EF4444"),
		Positive:          lipgloss.Color("#10B981"),
		Negative:          lipgloss.Color("#EF4444"),
		StatusBarBg:       lipgloss.Color("#121212"),
		SurfaceBackground: lipgloss.Color("#1E1E1E"),
		SurfaceText:       lipgloss.Color("#E2E8F0"),
		ButtonBackground:  lipgloss.Color("#3B82F6"),
		ButtonText:        lipgloss.Color("#FFFFFF"),
		InputBackground:   lipgloss.Color("#2A2A2A"),
		InputText:         lipgloss.Color("#E2E8F0"),
		HeaderBackground:  lipgloss.Color("#1A1A1A"),
		HeaderText:        lipgloss.Color("#FFFFFF"),
		TabBarBackground:  lipgloss.Color("#1A1A1A"),
		TabBarActive:      lipgloss.Color("#3B82F6"),
		TabBarInactive:    lipgloss.Color("#94A3B8"),
		CardBackground:    lipgloss.Color("#1E293B"),
		CardText:          lipgloss.Color("#E2E8F0"),
		Divider:           lipgloss.Color("#334155"),
	}
}
