package poker

import (
	"fmt"
	"sync"

	ph "github.com/paulhankin/poker"
)

// HandStrength is the score of the best five-card hand. Higher is stronger.
type HandStrength int16

// toLibrary converts a card to the evaluator library's representation, whose
// ranks run 1..13 with the ace at 1.
func toLibrary(c Card) (ph.Card, error) {
	var s ph.Suit
	switch c.Suit() {
	case Clubs:
		s = ph.Club
	case Diamonds:
		s = ph.Diamond
	case Hearts:
		s = ph.Heart
	case Spades:
		s = ph.Spade
	default:
		return 0, fmt.Errorf("invalid suit in card %d", c)
	}

	r := ph.Rank(c.Rank() + 2)
	if c.Rank() == Ace {
		r = ph.Rank(1)
	}
	return ph.MakeCard(s, r)
}

func libraryCards(hole Combo, board []Card) ([]ph.Card, error) {
	if len(board) < 3 || len(board) > 5 {
		return nil, fmt.Errorf("board must have 3 to 5 cards, got %d", len(board))
	}
	seen := NewCardSet(hole.Card1, hole.Card2)
	if seen.Len() != 2 {
		return nil, fmt.Errorf("hole cards %s are not distinct", hole)
	}

	out := make([]ph.Card, 0, len(board)+2)
	for _, c := range append([]Card{hole.Card1, hole.Card2}, board...) {
		if len(out) >= 2 && seen.Contains(c) {
			return nil, fmt.Errorf("card %s appears twice", c)
		}
		seen.Add(c)
		lc, err := toLibrary(c)
		if err != nil {
			return nil, err
		}
		out = append(out, lc)
	}
	return out, nil
}

// EvaluateHand scores the best five-card hand made from the hole cards and a
// flop, turn or river board.
func EvaluateHand(hole Combo, board []Card) (HandStrength, error) {
	cards, err := libraryCards(hole, board)
	if err != nil {
		return 0, err
	}
	score, _ := bestFive(cards)
	return score, nil
}

// DescribeHand returns a text description of the best five-card hand.
func DescribeHand(hole Combo, board []Card) (string, error) {
	cards, err := libraryCards(hole, board)
	if err != nil {
		return "", err
	}
	_, best := bestFive(cards)
	return ph.Describe(best[:])
}

// scoreSign maps raw library scores so that a larger HandStrength is always
// the stronger hand. It is derived once by comparing a royal flush with a
// seven-high hand.
var scoreSign = sync.OnceValue(func() HandStrength {
	mk := func(s ph.Suit, r ph.Rank) ph.Card {
		c, err := ph.MakeCard(s, r)
		if err != nil {
			panic(err)
		}
		return c
	}
	royal := [5]ph.Card{mk(ph.Spade, 1), mk(ph.Spade, 13), mk(ph.Spade, 12), mk(ph.Spade, 11), mk(ph.Spade, 10)}
	weak := [5]ph.Card{mk(ph.Club, 7), mk(ph.Diamond, 5), mk(ph.Heart, 4), mk(ph.Spade, 3), mk(ph.Club, 2)}
	if ph.Eval5(&royal) < ph.Eval5(&weak) {
		return -1
	}
	return 1
})

func eval5(five *[5]ph.Card) HandStrength {
	return HandStrength(ph.Eval5(five)) * scoreSign()
}

func bestFive(cards []ph.Card) (HandStrength, [5]ph.Card) {
	if len(cards) == 5 {
		var a5 [5]ph.Card
		copy(a5[:], cards)
		return eval5(&a5), a5
	}
	return bestSubset(cards)
}

// bestSubset returns the strongest five-card subset and its score.
func bestSubset(cards []ph.Card) (HandStrength, [5]ph.Card) {
	var (
		best      [5]ph.Card
		bestScore HandStrength
		found     bool
		five      [5]ph.Card
		choose    [5]int
	)
	var rec func(start, k int)
	rec = func(start, k int) {
		if k == 5 {
			for i := range five {
				five[i] = cards[choose[i]]
			}
			score := eval5(&five)
			if !found || score > bestScore {
				bestScore, best, found = score, five, true
			}
			return
		}
		for i := start; i <= len(cards)-(5-k); i++ {
			choose[k] = i
			rec(i+1, k+1)
		}
	}
	rec(0, 0)
	return bestScore, best
}
