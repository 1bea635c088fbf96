package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iiroan/blue/internal/platform"
)

// Row is one line in a Section.
type Row struct {
	Key   string
	Value string
	Note  string
}

func StartScreen(title string, subtitle string) {
	ClearScreen()
	fmt.Println(Header(title))
	if subtitle != "" {
		fmt.Println(Current.Tagline.Render(subtitle))
	}
	if !CurrentPreferences.Dense {
		fmt.Println()
	}
}

func ClearScreen() {
	if !platform.IsInteractiveTerminal() {
		return
	}
	fmt.Print("\033[2J\033[H")
}

// Header renders title as a full-width bar, capped at 72 columns.
func Header(title string) string {
	width := min(platform.TerminalWidth(72), 72)
	return Current.Header.Width(width).Render(strings.ToUpper(title))
}

// Section renders a titled block of aligned key/value rows.
func Section(title string, rows []Row) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Key))
	}

	key := Current.Key.Width(width + 2)
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, Current.GroupTitle.Render(title))
	for _, r := range rows {
		line := key.Render(r.Key) + Current.Value.Render(r.Value)
		if r.Note != "" {
			line += "  " + Current.Muted.Render(r.Note)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Println writes s and a newline to w, ignoring errors.
func Println(w io.Writer, s string) {
	_, _ = fmt.Fprintln(w, s)
}
