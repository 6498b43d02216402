package strategy

import (
	"math"
	"strconv"

	"github.com/lox/deeppdcfr/sdk/sizing"
)

// Action is one choice available at a decision node.
type Action struct {
	Name    string
	Type    ActionType
	Amount  int     // chips committed by the action
	Percent float64 // Amount relative to the pot, 0 for check and fold
}

// Actions lists the choices for the player to act. With no bet to face that
// is Check, one "Bet N%" per distinct configured amount and All-in; facing a
// bet it is Fold, Call, one "Raise N%" per distinct amount and All-in.
// Percent sizes that come to the whole stack are folded into All-in when the
// configuration includes it.
func Actions(n *Node, sizes sizing.Config) ([]Action, error) {
	if err := n.decision(); err != nil {
		return nil, err
	}

	oop := n.ToAct == OOP
	pot := n.TotalPot()
	toCall := n.ToCall()
	eff := n.EffectiveStack()

	var (
		actions []Action
		sized   []sizing.Sized
		kind    ActionType
		label   string
	)
	if toCall == 0 {
		actions = []Action{{Name: "Check", Type: Check}}
		sized, kind, label = sizes.Bets(oop, pot, eff), Bet, "Bet "
	} else {
		call := min(toCall, n.Stacks[n.ToAct])
		actions = []Action{
			{Name: "Fold", Type: Fold},
			{Name: "Call", Type: Call, Amount: call, Percent: percentOfPot(call, pot)},
		}
		if eff <= toCall {
			return actions, nil
		}
		sized, kind, label = sizes.Raises(oop, pot, toCall, eff), Raise, "Raise "
	}

	allIn := eff > 0 && sizes.HasAllIn(oop, toCall > 0)
	seen := make(map[int]bool, len(sized))
	for _, s := range sized {
		if s.Size.Kind == sizing.AllIn || seen[s.Amount] || (allIn && s.Amount >= eff) {
			continue
		}
		seen[s.Amount] = true
		percent := s.Size.Percent
		if kind == Bet && s.Amount < s.Size.Amount(pot, math.MaxInt) {
			// Capped at the effective stack: report what actually goes in.
			percent = percentOfPot(s.Amount, pot)
		}
		actions = append(actions, Action{
			Name:    label + strconv.FormatFloat(s.Size.Percent, 'f', -1, 64) + "%",
			Type:    kind,
			Amount:  s.Amount,
			Percent: percent,
		})
	}

	if allIn {
		actions = append(actions, Action{
			Name:    "All-in",
			Type:    AllIn,
			Amount:  eff,
			Percent: percentOfPot(eff, pot),
		})
	}
	return actions, nil
}

func percentOfPot(amount, pot int) float64 {
	if pot == 0 {
		return 0
	}
	return float64(amount) / float64(pot) * 100
}
