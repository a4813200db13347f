package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/items/internal/ui"
)

// styles derive from the active ui theme so -theme applies to the view too.
type styles struct {
	title, success, pending, accent, muted lipgloss.Style
	selected, help                         lipgloss.Style
	button, disabledButton, panel          lipgloss.Style

	available, unavailable string
}

func newStyles(t ui.Theme) styles {
	box := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return styles{
		title:          t.Title,
		success:        t.Success,
		pending:        t.Pending,
		accent:         t.Accent,
		muted:          t.Muted,
		selected:       t.Accent.Bold(true).Reverse(true),
		help:           t.Muted,
		button:         box,
		disabledButton: box.Faint(true),
		panel:          box,
		available:      t.SymAvailable,
		unavailable:    t.SymUnavailable,
	}
}
