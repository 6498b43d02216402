package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "0.1.0"

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"pdcfr.hcl" env:"PDCFR_CONFIG" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" env:"PDCFR_LOG_LEVEL" help:"Log level: debug, info, warn or error (overrides config)"`

	out io.Writer `kong:"-"`
}

func (g *Globals) stdout() io.Writer {
	if g.out == nil {
		return os.Stdout
	}
	return g.out
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Serve   ServeCmd         `cmd:"" help:"Run the strategy API server"`
	Range   RangeCmd         `cmd:"" help:"Show a range as a 13x13 grid"`
	Sizes   SizesCmd         `cmd:"" help:"Show bet and raise amounts for a sizing configuration"`
	Combos  CombosCmd        `cmd:"" help:"List the combos of a range"`
	Equity  EquityCmd        `cmd:"" help:"Showdown equity of a hand against a range"`
	Explore ExploreCmd       `cmd:"" help:"Explore ranges interactively"`
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pdcfr"),
		kong.Description("NLHE range and bet sizing toolkit with a strategy API"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
