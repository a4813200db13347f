package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects OK/Panel and Fail output.
func SetOutput(out, errOut io.Writer) {
	stdout, stderr = out, errOut
}

// SetColorForcing overrides terminal detection. disable wins over force.
func SetColorForcing(force, disable bool) {
	switch {
	case disable:
		lipgloss.SetColorProfile(termenv.Ascii)
	case force:
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
}

// C renders s with one of the theme's styles.
func C(style lipgloss.Style, s string) string { return style.Render(s) }

func OK(msg string)   { fmt.Fprintln(stdout, current.Success.Render(current.SymOK+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(stderr, current.Error.Render(current.SymFail+" "+msg)) }

// Println writes a plain line to the output.
func Println(s string) { fmt.Fprintln(stdout, s) }
