package poker

// Deck tracks the cards that are still live, i.e. not on the board or
// otherwise dead.
type Deck struct {
	live CardSet
}

// NewDeck creates a deck of every card except the dead ones
func NewDeck(dead ...Card) *Deck {
	d := &Deck{live: CardSet(1)<<NumCards - 1}
	for _, c := range dead {
		d.live.Remove(c)
	}
	return d
}

// Contains reports whether the card is still live
func (d *Deck) Contains(c Card) bool {
	return c.Valid() && d.live.Contains(c)
}
