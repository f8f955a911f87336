package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcquiz/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for centered sections.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 72)
}

// Field is one label/value line of a panel.
type Field struct {
	Label string
	Value string
}

// RenderFields renders label/value lines with labels padded to a common
// width.
func RenderFields(fields []Field) string {
	labelWidth := 0
	for _, f := range fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.Label))
	}
	lines := make([]string, len(fields))
	for i, f := range fields {
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(f.Label))
		lines[i] = theme.Label.Render(f.Label+":"+pad) + " " + theme.Value.Render(f.Value)
	}
	return strings.Join(lines, "\n")
}

// Panel renders body in a bordered box of the given outer width with a
// title line.
func Panel(title, body string, width int) string {
	content := body
	if title != "" {
		content = theme.Selected.Render(title) + "\n" + body
	}
	return theme.Panel.Width(width).Render(content)
}
