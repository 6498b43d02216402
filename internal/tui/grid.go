package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/deeppdcfr/sdk/analysis"
)

const cellWidth = 5

// Label chooses what each grid cell shows.
type Label int

const (
	LabelClass     Label = iota // "AKs"
	LabelFrequency              // mean frequency in percent, "-" when empty
)

// GridOptions controls RenderGrid.
type GridOptions struct {
	Label    Label
	Selected *[2]int // row, col to highlight
}

// RenderGrid draws the 13x13 chart, one text row per grid row.
func RenderGrid(g *analysis.Grid, styles GridStyles, opts GridOptions) string {
	var b strings.Builder
	for row := range analysis.GridSize {
		for col := range analysis.GridSize {
			cell := g.Cells[row][col]
			selected := opts.Selected != nil && opts.Selected[0] == row && opts.Selected[1] == col

			text := cellText(cell, opts.Label)
			if selected {
				text = "[" + text + "]"
			} else {
				text = " " + text
			}
			b.WriteString(cellStyle(cell, styles, selected).Render(text))
		}
		if row < analysis.GridSize-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func cellText(cell analysis.GridCell, label Label) string {
	if label == LabelClass {
		return cell.Class
	}
	if cell.Combos == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f", cell.MeanFrequency()*100)
}

func cellStyle(cell analysis.GridCell, styles GridStyles, selected bool) lipgloss.Style {
	switch {
	case selected:
		return styles.Selected
	case cell.Combos == 0:
		return styles.Empty
	case cell.Combos == cell.Total && cell.Uniform && cell.MaxFrequency == 1:
		return styles.Full
	}
	return styles.Partial
}

// DescribeCell is a one-line summary of a grid cell.
func DescribeCell(cell analysis.GridCell) string {
	if cell.Combos == 0 {
		return fmt.Sprintf("%s  not in range", cell.Class)
	}
	return fmt.Sprintf("%s  %d/%d combos  weight %.2f  mean %.1f%%  max %.0f%%",
		cell.Class, cell.Combos, cell.Total, cell.Weight, cell.MeanFrequency()*100, cell.MaxFrequency*100)
}

// Summary describes a whole range.
func Summary(r *analysis.Range) string {
	return fmt.Sprintf("%d combos, weight %.2f", r.Len(), r.TotalWeight())
}
