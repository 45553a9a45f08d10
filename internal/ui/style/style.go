// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Ember = lipgloss.Color("#E8590C")
	Slate = lipgloss.Color("#667085")
	Green = lipgloss.Color("#22A06B")
	Cyan  = lipgloss.Color("#0EA5E9")
	Red   = lipgloss.Color("#D93025")
	Amber = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
)

// VerbWidth is the column the status verb is right-aligned to, as cargo does.
const VerbWidth = 12

// Verb returns the style of a status verb such as "Compiling" or "Blocking".
func Verb(r *lipgloss.Renderer, verb string) lipgloss.Style {
	color := Green
	switch verb {
	case "Blocking", "Keeping":
		color = Cyan
	case "Warning":
		color = Amber
	}

	return r.NewStyle().
		Bold(true).
		Foreground(color).
		Width(VerbWidth).
		Align(lipgloss.Right)
}
