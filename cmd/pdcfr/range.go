package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/deeppdcfr/internal/tui"
	"github.com/lox/deeppdcfr/poker"
	"github.com/lox/deeppdcfr/sdk/analysis"
)

// RangeCmd prints a range as a hand class grid.
type RangeCmd struct {
	Range   string `arg:"" help:"Range in Pio notation, e.g. 'AA,AKs,QQ:0.5,JJ-99'"`
	Board   string `short:"b" help:"Remove combos blocked by these board cards"`
	Freq    bool   `short:"f" help:"Show mean frequency percentages instead of class names"`
	NoColor bool   `help:"Disable colours"`
}

// parseRangeOnBoard parses a range and removes combos that use a board card.
func parseRangeOnBoard(rangeText, boardText string) (*analysis.Range, []poker.Card, error) {
	r, err := analysis.ParseRange(rangeText)
	if err != nil {
		return nil, nil, err
	}
	board, err := poker.ParseBoard(boardText)
	if err != nil {
		return nil, nil, err
	}
	return r.FilterBlocked(board), board, nil
}

func (c *RangeCmd) Run(g *Globals) error {
	r, board, err := parseRangeOnBoard(c.Range, c.Board)
	if err != nil {
		return err
	}

	out := g.stdout()
	var opts []termenv.OutputOption
	if c.NoColor || g.out != nil {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	renderer := lipgloss.NewRenderer(out, opts...)

	label := tui.LabelClass
	if c.Freq {
		label = tui.LabelFrequency
	}
	fmt.Fprintln(out, tui.RenderGrid(r.Grid(), tui.NewGridStyles(renderer), tui.GridOptions{Label: label}))
	fmt.Fprintln(out)
	if len(board) > 0 {
		fmt.Fprintf(out, "Board: %s\n", poker.FormatBoard(board))
	}
	fmt.Fprintf(out, "Range: %s\n", r)
	fmt.Fprintln(out, tui.Summary(r))
	return nil
}
