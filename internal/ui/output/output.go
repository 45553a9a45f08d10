// Package output provides utilities for creating terminal writers with a
// consistent color profile across the CLI.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/kiln/internal/ui/style"
)

// ColorProfile returns the color profile to use.
// It checks if NO_COLOR is set, returning Ascii if so.
// Otherwise, it detects the terminal's capabilities automatically.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a new termenv.Output with the specific profile logic.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// NewRenderer returns a lipgloss renderer bound to w with the same profile as New.
func NewRenderer(w io.Writer) *lipgloss.Renderer {
	if w == nil {
		w = os.Stderr
	}

	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(ColorProfile())
	return r
}

// StatusLine formats msg behind a right-aligned verb column.
func StatusLine(r *lipgloss.Renderer, verb, msg string) string {
	return style.Verb(r, verb).Render(verb) + " " + msg
}

// WriteStatus writes a status line to w.
func WriteStatus(w io.Writer, verb, msg string) error {
	_, err := fmt.Fprintln(w, StatusLine(NewRenderer(w), verb, msg))
	return err
}
