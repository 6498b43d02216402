package strategy

import (
	"context"
	"fmt"

	"github.com/lox/deeppdcfr/poker"
	"github.com/lox/deeppdcfr/sdk/analysis"
	"github.com/lox/deeppdcfr/sdk/sizing"
)

// Input is a parsed solve request.
type Input struct {
	Player         Position
	Board          []poker.Card
	StartingPot    int
	EffectiveStack int
	Sizes          sizing.Config
	History        []HistoryAction
	OOPRange       *analysis.Range // nil means every combo
	IPRange        *analysis.Range // nil means every combo
}

// ComboStrategy is the action mix for one combo of the acting range.
type ComboStrategy struct {
	Combo    poker.Combo
	Weight   float64
	Strategy []float64
}

// Result is the answer for one decision node.
type Result struct {
	Node        *Node
	Actions     []Action
	Frequencies []float64 // range-weighted mean per action
	Combos      []ComboStrategy
}

// Solve replays the history, lists the actions at the resulting node and asks
// the provider for a strategy over the acting player's board-filtered range.
// Combos are returned in combo ID order.
func Solve(ctx context.Context, provider Provider, in Input) (*Result, error) {
	root, err := NewNode(in.Board, in.StartingPot, in.EffectiveStack)
	if err != nil {
		return nil, &SpotError{Reason: err.Error()}
	}
	node, err := Replay(root, in.History)
	if err != nil {
		return nil, err
	}
	actions, err := Actions(node, in.Sizes)
	if err != nil {
		return nil, err
	}
	if node.ToAct != in.Player {
		return nil, &SpotError{Reason: fmt.Sprintf("%s is to act, not %s", node.ToAct, in.Player)}
	}

	ranges := [2]*analysis.Range{in.OOPRange, in.IPRange}
	for i, r := range ranges {
		if r == nil {
			r = analysis.FullRange()
		}
		ranges[i] = r.FilterBlocked(node.Board)
	}

	spot := Spot{
		Node:    node,
		Actions: actions,
		Hero:    ranges[node.ToAct],
		Villain: ranges[node.ToAct.Other()],
	}
	strategies, err := provider.Strategy(ctx, spot)
	if err != nil {
		return nil, fmt.Errorf("strategy provider: %w", err)
	}

	combos := spot.Hero.Combos()
	if len(strategies) != len(combos) {
		return nil, fmt.Errorf("strategy provider returned %d vectors for %d combos", len(strategies), len(combos))
	}

	result := &Result{
		Node:    node,
		Actions: actions,
		Combos:  make([]ComboStrategy, len(combos)),
	}
	weights := make([]float64, len(combos))
	for i, wc := range combos {
		if len(strategies[i]) != len(actions) {
			return nil, fmt.Errorf("strategy for %s has %d entries for %d actions", wc.Combo(), len(strategies[i]), len(actions))
		}
		result.Combos[i] = ComboStrategy{Combo: wc.Combo(), Weight: wc.Frequency, Strategy: strategies[i]}
		weights[i] = wc.Frequency
	}
	result.Frequencies = ActionFrequencies(strategies, weights, len(actions))
	return result, nil
}
