package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/deeppdcfr/internal/tui"
)

// ExploreCmd starts the interactive range explorer.
type ExploreCmd struct {
	Range string `arg:"" optional:"" default:"AA,AKs,AKo,KK,QQ:0.5,JJ-99,AQs-ATs,KQs" help:"Initial range"`
	Board string `short:"b" default:"Ah Kd Qc" help:"Initial board"`
}

func (c *ExploreCmd) Run(g *Globals) error {
	// Logs would corrupt the alternate screen.
	logger, err := newLogger(os.Stderr, "error")
	if err != nil {
		return err
	}
	model := tui.NewExplorer(logger, lipgloss.NewRenderer(os.Stdout), c.Range, c.Board)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
