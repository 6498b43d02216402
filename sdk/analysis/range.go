// Package analysis provides PioSOLVER-style hand range parsing and weighted
// range operations over the fixed combo ID space.
package analysis

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/lox/deeppdcfr/poker"
)

// Range is a sparse mapping from combo ID to inclusion frequency in [0,1].
// Combos that are absent are not in the range. A Range is not modified after
// construction; FilterBlocked returns a new one.
type Range struct {
	combos map[uint16]float64
}

// WeightedCombo is a combo ID with its range frequency.
type WeightedCombo struct {
	ID        uint16
	Frequency float64
}

// Combo returns the card pair for the ID.
func (w WeightedCombo) Combo() poker.Combo {
	return poker.AllCombos()[w.ID]
}

// RangeError reports a range token that could not be parsed.
type RangeError struct {
	Token  string
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range token %q: %s", e.Token, e.Reason)
}

// NewRange creates a new empty range.
func NewRange() *Range {
	return &Range{combos: make(map[uint16]float64)}
}

// FullRange returns every combo at frequency 1.0.
func FullRange() *Range {
	r := &Range{combos: make(map[uint16]float64, poker.NumCombos)}
	for _, c := range poker.AllCombos() {
		r.combos[c.ID] = 1.0
	}
	return r
}

// ParseRange creates a range from PioSOLVER notation.
// Examples: "AA,KK", "AKs,AKo", "TT+", "A5s-A2s", "QQ:0.5", "22-66"
//
// Tokens are applied left to right; when two tokens cover the same combo the
// later token's frequency replaces the earlier one.
func ParseRange(notation string) (*Range, error) {
	r := NewRange()

	for part := range strings.SplitSeq(notation, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		hand, freq, err := splitFrequency(part)
		if err != nil {
			return nil, err
		}

		ids, err := expandPattern(hand)
		if err != nil {
			return nil, &RangeError{Token: part, Reason: err.Error()}
		}
		for _, id := range ids {
			r.combos[id] = freq
		}
	}

	return r, nil
}

// MustParseRange parses a range and panics on error (for tests and literals)
func MustParseRange(notation string) *Range {
	r, err := ParseRange(notation)
	if err != nil {
		panic(err)
	}
	return r
}

func splitFrequency(token string) (string, float64, error) {
	hand, freqStr, found := strings.Cut(token, ":")
	if !found {
		return token, 1.0, nil
	}

	hand = strings.TrimSpace(hand)
	freqStr = strings.TrimSpace(freqStr)
	freq, err := strconv.ParseFloat(freqStr, 64)
	if err != nil {
		return "", 0, &RangeError{Token: token, Reason: fmt.Sprintf("invalid frequency '%s'", freqStr)}
	}
	if !(freq >= 0 && freq <= 1) {
		return "", 0, &RangeError{Token: token, Reason: fmt.Sprintf("frequency must be 0.0-1.0, got %s", freqStr)}
	}
	return hand, freq, nil
}

// modifier restricts a non-pair hand to suited or offsuit combos.
type modifier uint8

const (
	anySuits modifier = iota
	suitedOnly
	offsuitOnly
)

// handSpec is a parsed two-rank hand like "AK", "AKs" or "22".
type handSpec struct {
	first  poker.Rank
	second poker.Rank
	mod    modifier
}

func (h handSpec) pair() bool { return h.first == h.second }

func parseHandSpec(s string) (handSpec, error) {
	if len(s) < 2 || len(s) > 3 {
		return handSpec{}, fmt.Errorf("invalid hand '%s' (expected 2 or 3 characters)", s)
	}

	first, ok := poker.ParseRank(s[0])
	if !ok {
		return handSpec{}, fmt.Errorf("invalid rank '%c'", s[0])
	}
	second, ok := poker.ParseRank(s[1])
	if !ok {
		return handSpec{}, fmt.Errorf("invalid rank '%c'", s[1])
	}

	spec := handSpec{first: first, second: second}
	if len(s) == 3 {
		switch s[2] {
		case 's', 'S':
			spec.mod = suitedOnly
		case 'o', 'O':
			spec.mod = offsuitOnly
		default:
			return handSpec{}, fmt.Errorf("invalid modifier '%c' (expected 's' or 'o')", s[2])
		}
	}
	return spec, nil
}

// patternMatcher expands one hand pattern into combo IDs. ok is false when the
// pattern does not belong to the matcher's grammar.
type patternMatcher func(s string) (ids []uint16, ok bool, err error)

// matchers are tried in priority order.
var matchers = []patternMatcher{
	matchPlus,
	matchDash,
	matchSingle,
}

func expandPattern(s string) ([]uint16, error) {
	for _, m := range matchers {
		ids, ok, err := m(s)
		if !ok {
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, fmt.Errorf("no combos found for '%s'", s)
		}
		return ids, nil
	}
	return nil, fmt.Errorf("unrecognized hand pattern '%s'", s)
}

// matchPlus handles notations like "22+" (every pair from 22 up) and "A2s+"
// (first rank fixed, second rank climbing to one below the first). Pair
// sweeps ignore any suit modifier.
func matchPlus(s string) ([]uint16, bool, error) {
	base, found := strings.CutSuffix(s, "+")
	if !found {
		return nil, false, nil
	}

	spec, err := parseHandSpec(base)
	if err != nil {
		return nil, true, err
	}

	var ids []uint16
	if spec.pair() {
		for rank := spec.first; rank <= poker.Ace; rank++ {
			ids = append(ids, pocketPair(rank, anySuits)...)
		}
		return ids, true, nil
	}

	for rank := spec.second; rank < spec.first; rank++ {
		ids = append(ids, unpaired(spec.first, rank, spec.mod)...)
	}
	return ids, true, nil
}

// matchDash handles notations like "JJ-99" or "AQs-ATs". Pair sweeps ignore
// any suit modifier; a sweep that reaches the pair of its first rank, as in
// "AKs-AAs", keeps the modifier for that pair.
func matchDash(s string) ([]uint16, bool, error) {
	if !strings.Contains(s, "-") {
		return nil, false, nil
	}

	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return nil, true, fmt.Errorf("invalid range format '%s'", s)
	}

	start, err := parseHandSpec(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, true, err
	}
	end, err := parseHandSpec(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, true, err
	}

	var ids []uint16
	if start.pair() && end.pair() {
		lower, upper := min(start.first, end.first), max(start.first, end.first)
		for rank := lower; rank <= upper; rank++ {
			ids = append(ids, pocketPair(rank, anySuits)...)
		}
		return ids, true, nil
	}

	if start.first != end.first {
		return nil, true, fmt.Errorf("range must have the same first rank '%s'", s)
	}

	lower, upper := min(start.second, end.second), max(start.second, end.second)
	for rank := lower; rank <= upper; rank++ {
		if rank == start.first {
			pair := pocketPair(rank, start.mod)
			if len(pair) == 0 {
				return nil, true, fmt.Errorf("no combos found for '%s%s'", rank, rank)
			}
			ids = append(ids, pair...)
			continue
		}
		ids = append(ids, unpaired(start.first, rank, start.mod)...)
	}
	return ids, true, nil
}

// matchSingle handles "AA", "AKs", "AKo" and "AK" (suited and offsuit).
// Rank order is irrelevant: "KA" is the same hand as "AK".
func matchSingle(s string) ([]uint16, bool, error) {
	spec, err := parseHandSpec(s)
	if err != nil {
		return nil, true, err
	}
	if spec.pair() {
		return pocketPair(spec.first, spec.mod), true, nil
	}
	return unpaired(spec.first, spec.second, spec.mod), true, nil
}

// pocketPair returns the 6 combinations of a pocket pair. Pairs are never
// suited, so a suited modifier matches nothing.
func pocketPair(rank poker.Rank, mod modifier) []uint16 {
	if mod == suitedOnly {
		return nil
	}

	ids := make([]uint16, 0, 6)
	suits := poker.AllSuits()
	for i, s1 := range suits {
		for _, s2 := range suits[i+1:] {
			ids = append(ids, comboID(poker.NewCard(rank, s1), poker.NewCard(rank, s2)))
		}
	}
	return ids
}

// unpaired returns the suited (4), offsuit (12) or all (16) combinations of
// two different ranks.
func unpaired(rank1, rank2 poker.Rank, mod modifier) []uint16 {
	ids := make([]uint16, 0, 16)
	for _, s1 := range poker.AllSuits() {
		for _, s2 := range poker.AllSuits() {
			suited := s1 == s2
			if (mod == suitedOnly && !suited) || (mod == offsuitOnly && suited) {
				continue
			}
			ids = append(ids, comboID(poker.NewCard(rank1, s1), poker.NewCard(rank2, s2)))
		}
	}
	return ids
}

func comboID(a, b poker.Card) uint16 {
	id, err := poker.ComboID(a, b)
	if err != nil {
		// Callers only pass distinct valid cards.
		panic(err)
	}
	return uint16(id)
}

// FilterBlocked returns a new range without the combos that share a card with
// the board. Frequencies are copied unchanged.
func (r *Range) FilterBlocked(board []poker.Card) *Range {
	dead := poker.NewCardSet(board...)
	all := poker.AllCombos()

	filtered := NewRange()
	for id, freq := range r.combos {
		if !all[id].BlockedBySet(dead) {
			filtered.combos[id] = freq
		}
	}
	return filtered
}

// Len returns the number of combos in the range
func (r *Range) Len() int {
	return len(r.combos)
}

// IsEmpty reports whether the range has no combos
func (r *Range) IsEmpty() bool {
	return len(r.combos) == 0
}

// Frequency returns the frequency of a combo, or 0 if it is not in the range
func (r *Range) Frequency(id int) float64 {
	if id < 0 || id >= poker.NumCombos {
		return 0
	}
	return r.combos[uint16(id)]
}

// Contains checks if the two hole cards are in the range
func (r *Range) Contains(c1, c2 poker.Card) bool {
	id, err := poker.ComboID(c1, c2)
	if err != nil {
		return false
	}
	_, ok := r.combos[uint16(id)]
	return ok
}

// Combos returns every combo with its frequency. Callers should treat the
// result as a set; it is sorted by ID only for stable output.
func (r *Range) Combos() []WeightedCombo {
	out := make([]WeightedCombo, 0, len(r.combos))
	for id, freq := range r.combos {
		out = append(out, WeightedCombo{ID: id, Frequency: freq})
	}
	slices.SortFunc(out, func(a, b WeightedCombo) int { return int(a.ID) - int(b.ID) })
	return out
}

// TotalWeight returns the sum of all frequencies, i.e. the weighted combo count
func (r *Range) TotalWeight() float64 {
	total := 0.0
	for _, freq := range r.combos {
		total += freq
	}
	return total
}

// String returns a compact per-hand-class summary such as "AA,AKs[2/4],QQ:0.5".
func (r *Range) String() string {
	grid := r.Grid()
	var parts []string
	for _, row := range grid.Cells {
		for _, cell := range row {
			if cell.Combos == 0 {
				continue
			}
			switch {
			case cell.Combos < cell.Total:
				parts = append(parts, fmt.Sprintf("%s[%d/%d]", cell.Class, cell.Combos, cell.Total))
			case cell.Uniform && cell.MaxFrequency == 1:
				parts = append(parts, cell.Class)
			case cell.Uniform:
				parts = append(parts, cell.Class+":"+strconv.FormatFloat(cell.MaxFrequency, 'g', -1, 64))
			default:
				parts = append(parts, fmt.Sprintf("%s:~%.2f", cell.Class, cell.MeanFrequency()))
			}
		}
	}
	return strings.Join(parts, ",")
}
