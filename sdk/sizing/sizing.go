// Package sizing parses bet-size lists such as "33, 67, a" and turns them into
// concrete chip amounts for a pot and stack.
package sizing

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind distinguishes pot-percentage sizes from all-in.
type Kind uint8

const (
	Percent Kind = iota
	AllIn
)

// BetSize is a single sizing rule.
type BetSize struct {
	Kind    Kind
	Percent float64 // percent of the pot, only for Percent sizes
}

// PercentOfPot returns a Percent size.
func PercentOfPot(pct float64) BetSize {
	return BetSize{Kind: Percent, Percent: pct}
}

// AllInSize returns the all-in size.
func AllInSize() BetSize {
	return BetSize{Kind: AllIn}
}

func (b BetSize) String() string {
	if b.Kind == AllIn {
		return "all-in"
	}
	return strconv.FormatFloat(b.Percent, 'f', -1, 64) + "%"
}

// Amount returns the chips this size commits as an opening bet. Percent sizes
// are rounded half away from zero and capped at the stack.
func (b BetSize) Amount(pot, stack int) int {
	if b.Kind == AllIn {
		return stack
	}
	return percentOf(pot, b.Percent, stack)
}

// percentOf rounds pct of pot to chips, saturating at limit before the
// conversion so oversized percentages cannot overflow.
func percentOf(pot int, pct float64, limit int) int {
	v := math.Round(float64(pot) * pct / 100)
	if v >= float64(limit) {
		return limit
	}
	return int(v)
}

// BetSizeError reports a bet size token that could not be parsed.
type BetSizeError struct {
	Token  string
	Reason string
}

func (e *BetSizeError) Error() string {
	if e.Token == "" {
		return "invalid bet sizes: " + e.Reason
	}
	return fmt.Sprintf("invalid bet size %q: %s", e.Token, e.Reason)
}

var decimal = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

// ParseBetSize parses one token: "a" or "allin" (any case) for all-in, or a
// positive decimal number giving a percent of the pot.
func ParseBetSize(token string) (BetSize, error) {
	s := strings.TrimSpace(token)
	if strings.EqualFold(s, "a") || strings.EqualFold(s, "allin") {
		return AllInSize(), nil
	}

	if !decimal.MatchString(s) {
		return BetSize{}, &BetSizeError{Token: s, Reason: "expected a number or 'a'"}
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return BetSize{}, &BetSizeError{Token: s, Reason: "expected a number or 'a'"}
	}
	if value <= 0 {
		return BetSize{}, &BetSizeError{Token: s, Reason: fmt.Sprintf("must be positive, got %v", value)}
	}
	return PercentOfPot(value), nil
}

// ParseBetSizes parses a comma separated list, keeping order and duplicates.
// Empty tokens are skipped but the list as a whole must not be empty.
func ParseBetSizes(s string) ([]BetSize, error) {
	var sizes []BetSize
	for token := range strings.SplitSeq(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		size, err := ParseBetSize(token)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, size)
	}

	if len(sizes) == 0 {
		return nil, &BetSizeError{Reason: "bet size list cannot be empty"}
	}
	return sizes, nil
}

// MustParseBetSizes is ParseBetSizes for literals; it panics on error.
func MustParseBetSizes(s string) []BetSize {
	sizes, err := ParseBetSizes(s)
	if err != nil {
		panic(err)
	}
	return sizes
}

// FormatBetSizes renders sizes in the notation ParseBetSizes accepts.
func FormatBetSizes(sizes []BetSize) string {
	parts := make([]string, len(sizes))
	for i, size := range sizes {
		if size.Kind == AllIn {
			parts[i] = "a"
			continue
		}
		parts[i] = strconv.FormatFloat(size.Percent, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}
