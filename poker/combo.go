package poker

import (
	"fmt"
	"sync"
)

// NumCombos is the number of distinct two-card starting hands, C(52,2).
const NumCombos = NumCards * (NumCards - 1) / 2

// Combo is an unordered pair of distinct hole cards with its stable ID.
// Card1 is always the card listed first in the enumeration order (higher rank,
// then higher suit).
type Combo struct {
	Card1 Card
	Card2 Card
	ID    uint16
}

// String returns the combo as concatenated cards, e.g. "AsKh".
func (c Combo) String() string {
	return c.Card1.String() + c.Card2.String()
}

// Cards returns both hole cards.
func (c Combo) Cards() [2]Card {
	return [2]Card{c.Card1, c.Card2}
}

// Pair reports whether both cards share a rank.
func (c Combo) Pair() bool {
	return c.Card1.Rank() == c.Card2.Rank()
}

// Suited reports whether both cards share a suit.
func (c Combo) Suited() bool {
	return c.Card1.Suit() == c.Card2.Suit()
}

// HandClass returns the 169-class notation for the combo: "AA", "AKs" or "AKo".
func (c Combo) HandClass() string {
	hi, lo := c.Card1.Rank(), c.Card2.Rank()
	if hi < lo {
		hi, lo = lo, hi
	}
	switch {
	case hi == lo:
		return string([]byte{hi.Char(), lo.Char()})
	case c.Suited():
		return string([]byte{hi.Char(), lo.Char(), 's'})
	default:
		return string([]byte{hi.Char(), lo.Char(), 'o'})
	}
}

// IsBlockedBy reports whether either hole card appears among the dead cards.
func (c Combo) IsBlockedBy(dead []Card) bool {
	for _, d := range dead {
		if d == c.Card1 || d == c.Card2 {
			return true
		}
	}
	return false
}

// BlockedBySet is IsBlockedBy for a precomputed card set.
func (c Combo) BlockedBySet(dead CardSet) bool {
	return dead.Contains(c.Card1) || dead.Contains(c.Card2)
}

// enumIndex is the position of a card in the enumeration order
// (As, Ah, Ad, Ac, Ks, ..., 2c).
func enumIndex(c Card) int {
	return NumCards - 1 - int(c)
}

func enumCard(i int) Card {
	return Card(NumCards - 1 - i)
}

// comboOffset is the ID of the first combo whose leading card is at position i.
func comboOffset(i int) int {
	return i*(NumCards-1) - i*(i-1)/2
}

// GenerateAllCombos returns all 1,326 combos in their fixed order. IDs are
// assigned sequentially; combo 0 is AsAh and combo 1325 is 2d2c. Downstream
// consumers address combos by these IDs, so the order must never change.
func GenerateAllCombos() []Combo {
	combos := make([]Combo, 0, NumCombos)
	id := uint16(0)
	for i := 0; i < NumCards; i++ {
		for j := i + 1; j < NumCards; j++ {
			combos = append(combos, Combo{Card1: enumCard(i), Card2: enumCard(j), ID: id})
			id++
		}
	}
	return combos
}

var allCombos = sync.OnceValue(GenerateAllCombos)

// AllCombos returns the shared, lazily built enumeration. Callers must not
// modify the returned slice.
func AllCombos() []Combo {
	return allCombos()
}

// ComboByID returns the combo with the given ID.
func ComboByID(id int) (Combo, error) {
	if id < 0 || id >= NumCombos {
		return Combo{}, fmt.Errorf("combo id %d out of range [0,%d)", id, NumCombos)
	}
	return AllCombos()[id], nil
}

// ComboID returns the stable ID for two distinct cards given in either order.
func ComboID(a, b Card) (int, error) {
	if !a.Valid() || !b.Valid() {
		return 0, fmt.Errorf("invalid cards %s, %s", a, b)
	}
	if a == b {
		return 0, fmt.Errorf("duplicate card %s", a)
	}
	i, j := enumIndex(a), enumIndex(b)
	if i > j {
		i, j = j, i
	}
	return comboOffset(i) + (j - i - 1), nil
}

// NewCombo builds the canonical combo for two distinct cards.
func NewCombo(a, b Card) (Combo, error) {
	id, err := ComboID(a, b)
	if err != nil {
		return Combo{}, err
	}
	return AllCombos()[id], nil
}

// FilterBlocked returns the combos not blocked by the board, preserving order.
func FilterBlocked(combos []Combo, board []Card) []Combo {
	dead := NewCardSet(board...)
	out := make([]Combo, 0, len(combos))
	for _, c := range combos {
		if !c.BlockedBySet(dead) {
			out = append(out, c)
		}
	}
	return out
}
