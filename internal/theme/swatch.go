package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// Swatches renders one line per palette role: a color block, the role
// name and its hex value.
func Swatches(t Theme) string {
	roles := t.Colors.Roles()
	width := lo.Max(lo.Map(roles, func(r Role, _ int) int { return len(r.Name) }))

	label := lipgloss.NewStyle().Width(width + 2)
	lines := make([]string, 0, len(roles))
	for _, r := range roles {
		block := lipgloss.NewStyle().Background(r.Color).Render("    ")
		lines = append(lines, fmt.Sprintf("%s %s%s", block, label.Render(r.Name), string(r.Color)))
	}
	return strings.Join(lines, "\n")
}
