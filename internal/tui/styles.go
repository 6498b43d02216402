package tui

import "github.com/charmbracelet/lipgloss"

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)
)

// GridStyles colour range grid cells. They are bound to a renderer so the
// colour profile follows the output they are written to.
type GridStyles struct {
	Full     lipgloss.Style // every combo at frequency 1
	Partial  lipgloss.Style // some weight, but not all
	Empty    lipgloss.Style
	Selected lipgloss.Style
}

// NewGridStyles builds cell styles for r.
func NewGridStyles(r *lipgloss.Renderer) GridStyles {
	cell := r.NewStyle().Width(cellWidth)
	return GridStyles{
		Full: cell.
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color("#96CEB4")),
		Partial: cell.
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color("#FFEAA7")),
		Empty: cell.
			Foreground(lipgloss.Color("#626262")),
		Selected: cell.
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
	}
}
