package analysis

import (
	"fmt"

	"github.com/lox/deeppdcfr/poker"
)

// EquityResult is a weighted showdown tally of one combo against a range on
// the current board. No runout cards are dealt.
type EquityResult struct {
	Wins   float64
	Ties   float64
	Losses float64
}

// Total returns the weight of every villain combo that was compared.
func (e EquityResult) Total() float64 {
	return e.Wins + e.Ties + e.Losses
}

// WinRate returns the win rate (0.0 to 1.0)
func (e EquityResult) WinRate() float64 {
	if e.Total() == 0 {
		return 0.0
	}
	return e.Wins / e.Total()
}

// TieRate returns the tie rate (0.0 to 1.0)
func (e EquityResult) TieRate() float64 {
	if e.Total() == 0 {
		return 0.0
	}
	return e.Ties / e.Total()
}

// LossRate returns the loss rate (0.0 to 1.0)
func (e EquityResult) LossRate() float64 {
	if e.Total() == 0 {
		return 0.0
	}
	return e.Losses / e.Total()
}

// Equity returns the overall equity (0.0 to 1.0).
// Wins count as 1.0, ties count as 0.5. An empty comparison is worth 0.5.
func (e EquityResult) Equity() float64 {
	if e.Total() == 0 {
		return 0.5
	}
	return (e.Wins + e.Ties*0.5) / e.Total()
}

// Showdown holds the made-hand score of every live villain combo on one board
// so many hero combos can be compared without re-evaluating the range.
type Showdown struct {
	board  []poker.Card
	scores map[uint16]poker.HandStrength
	freqs  map[uint16]float64
}

// NewShowdown scores the villain range on a 3 to 5 card board. Combos blocked
// by the board or with zero frequency are skipped.
func NewShowdown(villain *Range, board []poker.Card) (*Showdown, error) {
	if len(board) < 3 || len(board) > 5 {
		return nil, fmt.Errorf("board must have 3 to 5 cards, got %d", len(board))
	}

	sd := &Showdown{
		board:  board,
		scores: make(map[uint16]poker.HandStrength, villain.Len()),
		freqs:  make(map[uint16]float64, villain.Len()),
	}
	dead := poker.NewCardSet(board...)
	all := poker.AllCombos()
	for id, freq := range villain.combos {
		if freq == 0 || all[id].BlockedBySet(dead) {
			continue
		}
		score, err := poker.EvaluateHand(all[id], board)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", all[id], err)
		}
		sd.scores[id] = score
		sd.freqs[id] = freq
	}
	return sd, nil
}

// Equity tallies the hero combo against every villain combo it does not block.
func (sd *Showdown) Equity(hero poker.Combo) (EquityResult, error) {
	heroScore, err := poker.EvaluateHand(hero, sd.board)
	if err != nil {
		return EquityResult{}, fmt.Errorf("evaluate %s: %w", hero, err)
	}

	heroCards := poker.NewCardSet(hero.Card1, hero.Card2)
	all := poker.AllCombos()

	var result EquityResult
	for id, score := range sd.scores {
		if all[id].BlockedBySet(heroCards) {
			continue
		}
		freq := sd.freqs[id]
		switch {
		case heroScore > score:
			result.Wins += freq
		case heroScore == score:
			result.Ties += freq
		default:
			result.Losses += freq
		}
	}
	return result, nil
}

// EquityVsRange compares the hero combo's made hand with every villain combo
// that is not blocked by the board or the hero's cards, weighting each by its
// range frequency. The board must have 3 to 5 cards.
func EquityVsRange(hero poker.Combo, villain *Range, board []poker.Card) (EquityResult, error) {
	sd, err := NewShowdown(villain, board)
	if err != nil {
		return EquityResult{}, err
	}
	return sd.Equity(hero)
}
