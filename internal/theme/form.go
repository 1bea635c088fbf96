package theme

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// FormTheme returns a huh form theme colored from t.
func FormTheme(t Theme) *huh.Theme {
	c := t.Colors
	f := huh.ThemeBase()

	f.Focused.Base = f.Focused.Base.BorderForeground(c.Primary)
	f.Focused.Title = f.Focused.Title.Foreground(c.Primary).Bold(true)
	f.Focused.NoteTitle = f.Focused.NoteTitle.Foreground(c.Primary).Bold(true)
	f.Focused.Description = f.Focused.Description.Foreground(c.Secondary)
	f.Focused.ErrorIndicator = f.Focused.ErrorIndicator.Foreground(c.Negative)
	f.Focused.ErrorMessage = f.Focused.ErrorMessage.Foreground(c.Negative)
	f.Focused.SelectSelector = f.Focused.SelectSelector.Foreground(c.TabBarActive)
	f.Focused.NextIndicator = f.Focused.NextIndicator.Foreground(c.TabBarActive)
	f.Focused.PrevIndicator = f.Focused.PrevIndicator.Foreground(c.TabBarActive)
	f.Focused.Option = f.Focused.Option.Foreground(c.Text)
	f.Focused.MultiSelectSelector = f.Focused.MultiSelectSelector.Foreground(c.TabBarActive)
	f.Focused.SelectedOption = f.Focused.SelectedOption.Foreground(c.Positive)
	f.Focused.SelectedPrefix = f.Focused.SelectedPrefix.Foreground(c.Positive)
	f.Focused.UnselectedOption = f.Focused.UnselectedOption.Foreground(c.Text)
	f.Focused.UnselectedPrefix = f.Focused.UnselectedPrefix.Foreground(c.TabBarInactive)
	f.Focused.FocusedButton = f.Focused.FocusedButton.Foreground(c.ButtonText).Background(c.ButtonBackground).Bold(true)
	f.Focused.BlurredButton = f.Focused.BlurredButton.Foreground(c.Text).Background(lipgloss.Color(""))

	f.Focused.TextInput.Cursor = f.Focused.TextInput.Cursor.Foreground(c.Primary)
	f.Focused.TextInput.Placeholder = f.Focused.TextInput.Placeholder.Foreground(c.TabBarInactive)
	f.Focused.TextInput.Prompt = f.Focused.TextInput.Prompt.Foreground(c.Primary)
	f.Focused.TextInput.Text = f.Focused.TextInput.Text.Foreground(c.InputText)

	f.Blurred = f.Focused
	f.Blurred.Base = f.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	f.Blurred.Title = f.Focused.Title.Foreground(c.Secondary)
	f.Blurred.NextIndicator = lipgloss.NewStyle()
	f.Blurred.PrevIndicator = lipgloss.NewStyle()

	return f
}
