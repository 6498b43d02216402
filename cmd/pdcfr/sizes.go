package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/lox/deeppdcfr/internal/config"
	"github.com/lox/deeppdcfr/internal/strategy"
	"github.com/lox/deeppdcfr/sdk/sizing"
)

// SizesCmd prints the chip amounts a sizing configuration produces.
type SizesCmd struct {
	Position string  `default:"OOP" enum:"OOP,IP,oop,ip" help:"Position to size for"`
	Pot      int     `default:"20" help:"Pot before the action"`
	Stack    int     `default:"100" help:"Effective stack"`
	ToCall   int     `help:"Bet being faced; raises are shown when positive"`
	Bet      *string `help:"Bet sizes in Pio notation (defaults from config)"`
	Raise    *string `help:"Raise sizes in Pio notation (defaults from config)"`
}

func (c *SizesCmd) Run(g *Globals) error {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return err
	}
	sizes, err := cfg.Sizes()
	if err != nil {
		return err
	}
	pos, err := strategy.ParsePosition(c.Position)
	if err != nil {
		return err
	}
	oop := pos == strategy.OOP

	if c.Bet != nil {
		parsed, err := sizing.ParseBetSizes(*c.Bet)
		if err != nil {
			return err
		}
		if oop {
			sizes.OOPBet = parsed
		} else {
			sizes.IPBet = parsed
		}
	}
	if c.Raise != nil {
		parsed, err := sizing.ParseBetSizes(*c.Raise)
		if err != nil {
			return err
		}
		if oop {
			sizes.OOPRaise = parsed
		} else {
			sizes.IPRaise = parsed
		}
	}

	if c.Pot < 0 || c.Stack < 0 || c.ToCall < 0 {
		return fmt.Errorf("pot, stack and to-call must not be negative")
	}

	var sized []sizing.Sized
	kind := "Bet"
	if c.ToCall > 0 {
		kind = "Raise"
		sized = sizes.Raises(oop, c.Pot, c.ToCall, c.Stack)
	} else {
		sized = sizes.Bets(oop, c.Pot, c.Stack)
	}

	out := g.stdout()
	fmt.Fprintf(out, "%s %s sizes, pot %d, stack %d", pos, kind, c.Pot, c.Stack)
	if c.ToCall > 0 {
		fmt.Fprintf(out, ", facing %d", c.ToCall)
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SIZE\tAMOUNT")
	for _, s := range sized {
		fmt.Fprintf(tw, "%s\t%d\n", s.Size, s.Amount)
	}
	return tw.Flush()
}
