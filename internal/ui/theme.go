package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Border                                        lipgloss.Border
	SymOK, SymFail                                string
	SymAvailable, SymUnavailable                  string
	BarFull, BarEmpty                             string
}

var current Theme

func init() { SetTheme("classic") }

var asciiBorder = lipgloss.Border{
	Top: "-", Bottom: "-", Left: "|", Right: "|",
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
}

func fg(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title: fg("13").Bold(true), // bright magenta
			Muted: fg("8"), Accent: fg("14"),
			Success: fg("10"), Error: fg("9").Bold(true), Pending: fg("11"),
			Border:  lipgloss.RoundedBorder(),
			SymOK:   "✔", SymFail: "✖",
			SymAvailable: "✅", SymUnavailable: "❌",
			BarFull: "█", BarEmpty: "░",
		}
	case "mono":
		lipgloss.SetColorProfile(termenv.Ascii)
		plain := lipgloss.NewStyle()
		current = Theme{
			Title: plain, Muted: plain, Accent: plain,
			Success: plain, Error: plain, Pending: plain,
			Border:  asciiBorder,
			SymOK:   "ok", SymFail: "error:",
			SymAvailable: "[yes]", SymUnavailable: "[no]",
			BarFull: "#", BarEmpty: ".",
		}
	default: // classic
		current = Theme{
			Title: lipgloss.NewStyle().Bold(true), Muted: lipgloss.NewStyle().Faint(true), Accent: fg("12"),
			Success: fg("42"), Error: fg("9").Bold(true), Pending: fg("214"),
			Border:  lipgloss.NormalBorder(),
			SymOK:   "✔", SymFail: "✖",
			SymAvailable: "✅", SymUnavailable: "❌",
			BarFull: "█", BarEmpty: "░",
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }
