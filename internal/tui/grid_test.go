package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/deeppdcfr/sdk/analysis"
)

func plainStyles() GridStyles {
	return NewGridStyles(lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.Ascii)))
}

func gridRows(t *testing.T, out string) [][]string {
	t.Helper()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, analysis.GridSize)
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = strings.Fields(line)
		require.Len(t, rows[i], analysis.GridSize, "row %d: %q", i, line)
	}
	return rows
}

func TestRenderGridClasses(t *testing.T) {
	t.Parallel()
	rows := gridRows(t, RenderGrid(analysis.NewGrid(), plainStyles(), GridOptions{}))

	assert.Equal(t, "AA", rows[0][0])
	assert.Equal(t, "AKs", rows[0][1])
	assert.Equal(t, "A2s", rows[0][12])
	assert.Equal(t, "AKo", rows[1][0])
	assert.Equal(t, "KK", rows[1][1])
	assert.Equal(t, "22", rows[12][12])
	assert.Equal(t, "32o", rows[12][11])
}

func TestRenderGridFrequencies(t *testing.T) {
	t.Parallel()
	g := analysis.MustParseRange("AA,KK:0.5,AKs").FilterBlocked(nil).Grid()
	rows := gridRows(t, RenderGrid(g, plainStyles(), GridOptions{Label: LabelFrequency}))

	assert.Equal(t, "100", rows[0][0])
	assert.Equal(t, "100", rows[0][1])
	assert.Equal(t, "50", rows[1][1])
	assert.Equal(t, "-", rows[1][0])
	assert.Equal(t, "-", rows[12][12])
}

func TestRenderGridSelection(t *testing.T) {
	t.Parallel()
	out := RenderGrid(analysis.NewGrid(), plainStyles(), GridOptions{Selected: &[2]int{2, 0}})
	rows := gridRows(t, out)
	assert.Equal(t, "[AQo]", rows[2][0])
	assert.Equal(t, "AQs", rows[0][2])
}

func TestCellStyle(t *testing.T) {
	t.Parallel()
	styles := plainStyles()
	g := analysis.MustParseRange("AA,KK:0.5,AKs").FilterBlocked(nil).Grid()

	tests := []struct {
		name     string
		cell     analysis.GridCell
		selected bool
		want     lipgloss.Style
	}{
		{"full", g.Cells[0][0], false, styles.Full},
		{"partial", g.Cells[1][1], false, styles.Partial},
		{"empty", g.Cells[2][2], false, styles.Empty},
		{"selected wins", g.Cells[0][0], true, styles.Selected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := cellStyle(tt.cell, styles, tt.selected)
			assert.Equal(t, tt.want.Render("x"), got.Render("x"))
			assert.Equal(t, tt.want.GetBackground(), got.GetBackground())
		})
	}
}

func TestDescribeCell(t *testing.T) {
	t.Parallel()
	r := analysis.MustParseRange("AKs:0.5")
	cell, ok := r.Grid().Cell("AKs")
	require.True(t, ok)
	assert.Equal(t, "AKs  4/4 combos  weight 2.00  mean 50.0%  max 50%", DescribeCell(cell))

	cell, ok = r.Grid().Cell("72o")
	require.True(t, ok)
	assert.Equal(t, "72o  not in range", DescribeCell(cell))

	assert.Equal(t, "4 combos, weight 2.00", Summary(r))
}
