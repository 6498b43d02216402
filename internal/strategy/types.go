// Package strategy rebuilds the decision node a betting history leads to,
// lists the actions available there and assigns per-combo action
// frequencies through a pluggable Provider.
package strategy

import (
	"fmt"
	"strings"
)

// Position is one of the two seats in a heads-up subgame. OOP acts first on
// every street.
type Position uint8

const (
	OOP Position = iota
	IP
)

func (p Position) String() string {
	if p == IP {
		return "IP"
	}
	return "OOP"
}

// Other returns the opposing seat.
func (p Position) Other() Position {
	return 1 - p
}

// ParsePosition accepts "OOP" or "IP" in any case.
func ParsePosition(s string) (Position, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OOP":
		return OOP, nil
	case "IP":
		return IP, nil
	}
	return 0, fmt.Errorf("invalid position %q (expected OOP or IP)", s)
}

func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Position) UnmarshalText(text []byte) error {
	pos, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = pos
	return nil
}

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river"}[s]
}

// StreetForBoard returns the street a board of n cards belongs to.
func StreetForBoard(n int) (Street, error) {
	switch n {
	case 0:
		return Preflop, nil
	case 3:
		return Flop, nil
	case 4:
		return Turn, nil
	case 5:
		return River, nil
	}
	return 0, fmt.Errorf("board must have 0, 3, 4 or 5 cards, got %d", n)
}

// ActionType is the wire name of an action.
type ActionType string

const (
	Check ActionType = "check"
	Call  ActionType = "call"
	Fold  ActionType = "fold"
	Bet   ActionType = "bet"
	Raise ActionType = "raise"
	AllIn ActionType = "allin"
	Deal  ActionType = "deal"
)

// Valid reports whether the action type is known.
func (a ActionType) Valid() bool {
	switch a {
	case Check, Call, Fold, Bet, Raise, AllIn, Deal:
		return true
	}
	return false
}

// Aggressive reports whether the action puts in chips beyond a call.
func (a ActionType) Aggressive() bool {
	return a == Bet || a == Raise || a == AllIn
}

func (a *ActionType) UnmarshalText(text []byte) error {
	t := ActionType(strings.ToLower(string(text)))
	if !t.Valid() {
		return fmt.Errorf("invalid action %q", string(text))
	}
	*a = t
	return nil
}

// HistoryAction is one entry of a betting history replayed to reach a node.
type HistoryAction struct {
	Order         int        `json:"order"`
	Position      Position   `json:"position"`
	Action        ActionType `json:"action"`
	AmountPercent *float64   `json:"amount_percent,omitempty"`
	Card          *string    `json:"card,omitempty"`
}

// HistoryError reports a betting history entry that cannot be applied.
type HistoryError struct {
	Order  int
	Reason string
}

func (e *HistoryError) Error() string {
	return fmt.Sprintf("betting history action %d: %s", e.Order, e.Reason)
}

// SpotError reports a node where no decision can be made.
type SpotError struct {
	Reason string
}

func (e *SpotError) Error() string {
	return "no decision at this node: " + e.Reason
}
