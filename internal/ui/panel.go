package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RatioBar renders part/total as a bar with a percentage.
func RatioBar(part, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(part) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(current.BarFull, filled) + strings.Repeat(current.BarEmpty, width-filled)
	pct := int(float64(part) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel draws a framed box using the current theme.
func Panel(lines []string) {
	fmt.Fprintln(stdout, PanelString(lines))
}

// PanelString is Panel without the write.
func PanelString(lines []string) string {
	border := lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}
