package main

import (
	"fmt"

	"github.com/lox/deeppdcfr/poker"
	"github.com/lox/deeppdcfr/sdk/analysis"
)

// EquityCmd evaluates one hand against a range on a fixed board.
type EquityCmd struct {
	Hand    string `arg:"" help:"Hero hand, e.g. AsKd"`
	Villain string `arg:"" help:"Villain range in Pio notation"`
	Board   string `short:"b" required:"" help:"Board with 3 to 5 cards"`
}

func (c *EquityCmd) Run(g *Globals) error {
	cards, err := poker.ParseBoard(c.Hand)
	if err != nil {
		return err
	}
	if len(cards) != 2 {
		return fmt.Errorf("hand must be 2 cards, got %d", len(cards))
	}
	hero, err := poker.NewCombo(cards[0], cards[1])
	if err != nil {
		return err
	}
	board, err := poker.ParseBoard(c.Board)
	if err != nil {
		return err
	}
	villain, err := analysis.ParseRange(c.Villain)
	if err != nil {
		return err
	}

	res, err := analysis.EquityVsRange(hero, villain, board)
	if err != nil {
		return err
	}
	made, err := poker.DescribeHand(hero, board)
	if err != nil {
		return err
	}

	out := g.stdout()
	fmt.Fprintf(out, "%s on %s (%s)\n", hero, poker.FormatBoard(board), made)
	fmt.Fprintf(out, "Villain combos: %.2f\n", res.Total())
	fmt.Fprintf(out, "Win %.1f%%  Tie %.1f%%  Lose %.1f%%\n", res.WinRate()*100, res.TieRate()*100, res.LossRate()*100)
	fmt.Fprintf(out, "Equity %.1f%%\n", res.Equity()*100)
	return nil
}
