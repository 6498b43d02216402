package strategy

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/lox/deeppdcfr/poker"
)

// Node is the betting state of a heads-up subgame at one point in a hand.
// Stacks and bets are indexed by Position.
type Node struct {
	Board  []poker.Card
	Street Street
	Pot    int    // chips from previous streets
	Stacks [2]int // chips behind
	Bets   [2]int // chips committed on the current street
	ToAct  Position
	Closed bool // betting on this street is complete
	Folded bool
	Folder Position

	acted [2]bool
}

// NewNode creates the first decision of a street: OOP to act, no bets, both
// players holding the effective stack.
func NewNode(board []poker.Card, pot, stack int) (*Node, error) {
	street, err := StreetForBoard(len(board))
	if err != nil {
		return nil, err
	}
	if poker.NewCardSet(board...).Len() != len(board) {
		return nil, fmt.Errorf("board %s contains a duplicate card", poker.FormatBoard(board))
	}
	if pot < 0 {
		return nil, fmt.Errorf("pot must not be negative, got %d", pot)
	}
	if stack < 0 {
		return nil, fmt.Errorf("stack must not be negative, got %d", stack)
	}

	return &Node{
		Board:  slices.Clone(board),
		Street: street,
		Pot:    pot,
		Stacks: [2]int{stack, stack},
		ToAct:  OOP,
	}, nil
}

// Clone returns a deep copy.
func (n *Node) Clone() *Node {
	c := *n
	c.Board = slices.Clone(n.Board)
	return &c
}

// TotalPot is the pot including bets on the current street.
func (n *Node) TotalPot() int {
	return n.Pot + n.Bets[OOP] + n.Bets[IP]
}

// ToCall is what the player to act must add to match the opponent.
func (n *Node) ToCall() int {
	return max(0, n.Bets[n.ToAct.Other()]-n.Bets[n.ToAct])
}

// EffectiveStack is the most the player to act can usefully commit: their own
// stack, or the opponent's stack plus the call if that is smaller.
func (n *Node) EffectiveStack() int {
	me, opp := n.ToAct, n.ToAct.Other()
	return min(n.Stacks[me], n.Stacks[opp]+n.ToCall())
}

// Terminal reports whether the hand is over: a fold, betting closed on the
// river, or an all-in that has been called.
func (n *Node) Terminal() bool {
	if n.Folded {
		return true
	}
	return n.Closed && (n.Street == River || n.Stacks[OOP] == 0 || n.Stacks[IP] == 0)
}

// AwaitingDeal reports whether betting has closed and the next card is due.
func (n *Node) AwaitingDeal() bool {
	return n.Closed && !n.Terminal()
}

// decision returns a SpotError unless a player has an action to take.
func (n *Node) decision() error {
	switch {
	case n.Folded:
		return &SpotError{Reason: fmt.Sprintf("%s folded", n.Folder)}
	case n.Terminal():
		return &SpotError{Reason: "the hand has reached showdown"}
	case n.AwaitingDeal():
		return &SpotError{Reason: fmt.Sprintf("betting on the %s is closed and the next card has not been dealt", n.Street)}
	}
	return nil
}

// Replay applies a betting history to a copy of the node. Orders must run
// 1, 2, 3... in slice order.
func Replay(root *Node, history []HistoryAction) (*Node, error) {
	n := root.Clone()
	for i, a := range history {
		if a.Order != i+1 {
			return nil, &HistoryError{Order: a.Order, Reason: fmt.Sprintf("expected order %d", i+1)}
		}
		if err := n.apply(a); err != nil {
			return nil, &HistoryError{Order: a.Order, Reason: err.Error()}
		}
	}
	return n, nil
}

func (n *Node) apply(a HistoryAction) error {
	if !a.Action.Valid() {
		return fmt.Errorf("unknown action %q", a.Action)
	}
	if n.Terminal() {
		return errors.New("the hand is already over")
	}
	if a.Action == Deal {
		return n.deal(a.Card)
	}
	if n.Closed {
		return fmt.Errorf("betting on the %s is closed; a card must be dealt", n.Street)
	}
	if a.Position != n.ToAct {
		return fmt.Errorf("%s acted out of turn; %s is to act", a.Position, n.ToAct)
	}

	me, opp := n.ToAct, n.ToAct.Other()
	toCall := n.ToCall()
	eff := n.EffectiveStack()

	switch a.Action {
	case Check:
		if toCall > 0 {
			return fmt.Errorf("cannot check facing a bet of %d", toCall)
		}

	case Fold:
		if toCall == 0 {
			return errors.New("cannot fold when not facing a bet")
		}
		n.Folded, n.Folder = true, me
		return nil

	case Call:
		if toCall == 0 {
			return errors.New("cannot call when not facing a bet")
		}
		n.call()

	case Bet:
		if toCall > 0 {
			return fmt.Errorf("cannot bet facing a bet of %d; raise instead", toCall)
		}
		pct, err := amountPercent(a)
		if err != nil {
			return err
		}
		amount := roundChips(float64(n.TotalPot())*pct/100, eff)
		if amount <= 0 {
			return fmt.Errorf("bet of %v%% rounds to zero chips", pct)
		}
		n.raise(amount)

	case Raise:
		if toCall == 0 {
			return errors.New("cannot raise when not facing a bet; bet instead")
		}
		pct, err := amountPercent(a)
		if err != nil {
			return err
		}
		amount := toCall + roundChips(float64(n.TotalPot()+toCall)*pct/100, eff-toCall)
		if amount <= toCall {
			return errors.New("not enough chips behind to raise")
		}
		n.raise(amount)

	case AllIn:
		if n.Stacks[me] == 0 {
			return errors.New("no chips left to go all-in")
		}
		if toCall > 0 && eff <= toCall {
			n.call()
			break
		}
		n.raise(eff)
	}

	n.acted[me] = true
	if n.Bets[OOP] == n.Bets[IP] && n.acted[OOP] && n.acted[IP] {
		n.Closed = true
		return nil
	}
	n.ToAct = opp
	return nil
}

// call matches the opponent's bet, or as much of it as the stack allows.
// Any uncalled excess goes back to the opponent.
func (n *Node) call() {
	me, opp := n.ToAct, n.ToAct.Other()
	n.commit(me, min(n.ToCall(), n.Stacks[me]))
	if excess := n.Bets[opp] - n.Bets[me]; excess > 0 {
		n.Bets[opp] -= excess
		n.Stacks[opp] += excess
	}
}

// raise commits amount and reopens the action for the opponent.
func (n *Node) raise(amount int) {
	n.commit(n.ToAct, amount)
	n.acted[n.ToAct.Other()] = false
}

func (n *Node) commit(p Position, amount int) {
	n.Stacks[p] -= amount
	n.Bets[p] += amount
}

func (n *Node) deal(card *string) error {
	if !n.Closed {
		return fmt.Errorf("cannot deal before betting on the %s is closed", n.Street)
	}
	if n.Street == Preflop {
		return errors.New("flop cards must be given as the board")
	}
	if card == nil {
		return errors.New("deal requires a card")
	}

	c, err := poker.ParseCard(*card)
	if err != nil {
		return err
	}
	if !poker.NewDeck(n.Board...).Contains(c) {
		return fmt.Errorf("card %s is already on the board", c)
	}

	n.Board = append(n.Board, c)
	n.Street++
	n.Pot = n.TotalPot()
	n.Bets = [2]int{}
	n.acted = [2]bool{}
	n.ToAct = OOP
	n.Closed = false
	return nil
}

func amountPercent(a HistoryAction) (float64, error) {
	if a.AmountPercent == nil {
		return 0, fmt.Errorf("%s requires amount_percent", a.Action)
	}
	pct := *a.AmountPercent
	if math.IsNaN(pct) || math.IsInf(pct, 0) || pct <= 0 {
		return 0, fmt.Errorf("%s amount_percent must be positive, got %v", a.Action, pct)
	}
	return pct, nil
}

// roundChips rounds v to whole chips, capped at limit in the float domain.
func roundChips(v float64, limit int) int {
	v = math.Round(v)
	if v >= float64(limit) {
		return limit
	}
	return int(v)
}
