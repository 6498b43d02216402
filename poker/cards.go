// Package poker provides the compact card model used by the range and bet-size
// engines: ranks, suits, cards, boards and the fixed enumeration of the 1,326
// two-card combinations.
package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Rank is a card rank from Two (0) to Ace (12).
type Rank uint8

// Suit is a card suit from Clubs (0) to Spades (3).
type Suit uint8

// Rank constants (0-12 for 2-A)
const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suit constants
const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

const (
	numRanks = 13
	numSuits = 4

	// NumCards is the size of the deck.
	NumCards = numRanks * numSuits
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// Valid reports whether r is one of the 13 ranks.
func (r Rank) Valid() bool { return r < numRanks }

// Char returns the canonical upper-case rank character.
func (r Rank) Char() byte {
	if !r.Valid() {
		return '?'
	}
	return rankChars[r]
}

func (r Rank) String() string { return string(r.Char()) }

// Valid reports whether s is one of the 4 suits.
func (s Suit) Valid() bool { return s < numSuits }

// Char returns the canonical lower-case suit character.
func (s Suit) Char() byte {
	if !s.Valid() {
		return '?'
	}
	return suitChars[s]
}

func (s Suit) String() string { return string(s.Char()) }

// AllRanks returns every rank from Two to Ace.
func AllRanks() []Rank {
	ranks := make([]Rank, 0, numRanks)
	for r := Two; r <= Ace; r++ {
		ranks = append(ranks, r)
	}
	return ranks
}

// AllSuits returns every suit from Clubs to Spades.
func AllSuits() []Suit {
	return []Suit{Clubs, Diamonds, Hearts, Spades}
}

// ParseRank parses a single rank character, case-insensitively.
func ParseRank(c byte) (Rank, bool) {
	switch c {
	case '2':
		return Two, true
	case '3':
		return Three, true
	case '4':
		return Four, true
	case '5':
		return Five, true
	case '6':
		return Six, true
	case '7':
		return Seven, true
	case '8':
		return Eight, true
	case '9':
		return Nine, true
	case 'T', 't':
		return Ten, true
	case 'J', 'j':
		return Jack, true
	case 'Q', 'q':
		return Queen, true
	case 'K', 'k':
		return King, true
	case 'A', 'a':
		return Ace, true
	default:
		return 0, false
	}
}

// ParseSuit parses a single suit character, case-insensitively.
func ParseSuit(c byte) (Suit, bool) {
	switch c {
	case 'c', 'C':
		return Clubs, true
	case 'd', 'D':
		return Diamonds, true
	case 'h', 'H':
		return Hearts, true
	case 's', 'S':
		return Spades, true
	default:
		return 0, false
	}
}

// Card is a single card encoded as rank*4 + suit, giving identities 0-51.
type Card uint8

// NewCard creates a card from rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card(uint8(rank)*numSuits + uint8(suit))
}

// CardFromID returns the card with the given identity.
func CardFromID(id int) (Card, error) {
	if id < 0 || id >= NumCards {
		return 0, fmt.Errorf("card id %d out of range [0,%d)", id, NumCards)
	}
	return Card(id), nil
}

// ID returns the dense identity of the card in [0,52).
func (c Card) ID() int { return int(c) }

// Rank returns the rank of the card.
func (c Card) Rank() Rank { return Rank(c / numSuits) }

// Suit returns the suit of the card.
func (c Card) Suit() Suit { return Suit(c % numSuits) }

// Valid reports whether c is one of the 52 cards.
func (c Card) Valid() bool { return c < NumCards }

// String returns the string representation (e.g., "As", "Th").
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string([]byte{c.Rank().Char(), c.Suit().Char()})
}

// CardError reports a card or board string that could not be parsed.
type CardError struct {
	Input  string
	Reason string
}

func (e *CardError) Error() string {
	return fmt.Sprintf("invalid card %q: %s", e.Input, e.Reason)
}

// ParseCard parses a string like "As" into a Card.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, &CardError{Input: s, Reason: "expected 2 characters"}
	}

	rank, ok := ParseRank(s[0])
	if !ok {
		return 0, &CardError{Input: s, Reason: fmt.Sprintf("invalid rank '%c'", s[0])}
	}

	suit, ok := ParseSuit(s[1])
	if !ok {
		return 0, &CardError{Input: s, Reason: fmt.Sprintf("invalid suit '%c'", s[1])}
	}

	return NewCard(rank, suit), nil
}

// MustParseCard parses a card and panics on error (for tests and literals)
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseBoard parses board cards in either space-separated ("Ah Kd Qc") or
// concatenated ("AhKdQc") form. Duplicate cards are not rejected here.
func ParseBoard(s string) ([]Card, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []Card{}, nil
	}

	if strings.ContainsAny(s, " \t\n\r") {
		fields := strings.Fields(s)
		cards := make([]Card, 0, len(fields))
		for _, field := range fields {
			c, err := ParseCard(field)
			if err != nil {
				return nil, err
			}
			cards = append(cards, c)
		}
		return cards, nil
	}

	if len(s)%2 != 0 {
		return nil, &CardError{Input: s, Reason: fmt.Sprintf("board length %d is not a multiple of 2", len(s))}
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseBoard parses a board and panics on error (for tests)
func MustParseBoard(s string) []Card {
	cards, err := ParseBoard(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse board '%s': %v", s, err))
	}
	return cards
}

// FormatBoard renders cards space-separated, e.g. "Ah Kd Qc".
func FormatBoard(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// CardSet is a set of cards with one bit per card identity.
type CardSet uint64

// NewCardSet creates a set from multiple cards
func NewCardSet(cards ...Card) CardSet {
	var s CardSet
	for _, c := range cards {
		s.Add(c)
	}
	return s
}

// Add adds a card to the set
func (s *CardSet) Add(c Card) {
	*s |= CardSet(1) << c
}

// Remove removes a card from the set
func (s *CardSet) Remove(c Card) {
	*s &^= CardSet(1) << c
}

// Contains reports whether the card is in the set
func (s CardSet) Contains(c Card) bool {
	return s&(CardSet(1)<<c) != 0
}

// Len returns the number of cards in the set
func (s CardSet) Len() int {
	return bits.OnesCount64(uint64(s))
}
