package sizing

import "fmt"

const (
	DefaultBetSizes   = "33, 67, a"
	DefaultRaiseSizes = "50, a"
)

// Config holds the bet and raise sizes available to each position.
type Config struct {
	OOPBet   []BetSize
	OOPRaise []BetSize
	IPBet    []BetSize
	IPRaise  []BetSize
}

// DefaultConfig returns "33, 67, a" for bets and "50, a" for raises in both
// positions.
func DefaultConfig() Config {
	return Config{
		OOPBet:   MustParseBetSizes(DefaultBetSizes),
		OOPRaise: MustParseBetSizes(DefaultRaiseSizes),
		IPBet:    MustParseBetSizes(DefaultBetSizes),
		IPRaise:  MustParseBetSizes(DefaultRaiseSizes),
	}
}

// ConfigFromStrings parses the four size lists. The error names the field
// that failed.
func ConfigFromStrings(oopBet, oopRaise, ipBet, ipRaise string) (Config, error) {
	var cfg Config
	fields := []struct {
		name  string
		value string
		dst   *[]BetSize
	}{
		{"oop_bet", oopBet, &cfg.OOPBet},
		{"oop_raise", oopRaise, &cfg.OOPRaise},
		{"ip_bet", ipBet, &cfg.IPBet},
		{"ip_raise", ipRaise, &cfg.IPRaise},
	}

	for _, f := range fields {
		sizes, err := ParseBetSizes(f.value)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = sizes
	}
	return cfg, nil
}

// Sized pairs a size rule with the chip amount it produced.
type Sized struct {
	Size   BetSize
	Amount int
}

// Bets returns the opening bet for each configured size, skipping any that
// come to zero or exceed the stack. Order follows the configuration and
// duplicates are kept.
func (c Config) Bets(oop bool, pot, stack int) []Sized {
	sizes := c.IPBet
	if oop {
		sizes = c.OOPBet
	}

	out := make([]Sized, 0, len(sizes))
	for _, size := range sizes {
		amount := size.Amount(pot, stack)
		if amount > 0 && amount <= stack {
			out = append(out, Sized{Size: size, Amount: amount})
		}
	}
	return out
}

// BetAmounts is Bets without the size rules.
func (c Config) BetAmounts(oop bool, pot, stack int) []int {
	return amounts(c.Bets(oop, pot, stack))
}

// Raises returns the chips committed by each configured raise when facing
// toCall: the call plus that percent of the pot after calling, or the whole
// stack for all-in. Amounts that do not exceed toCall or that exceed the stack
// are skipped.
func (c Config) Raises(oop bool, pot, toCall, stack int) []Sized {
	sizes := c.IPRaise
	if oop {
		sizes = c.OOPRaise
	}

	potAfterCall := pot + toCall
	out := make([]Sized, 0, len(sizes))
	for _, size := range sizes {
		amount := stack
		if size.Kind == Percent {
			// Saturate one chip past the stack so oversized raises are still dropped.
			amount = toCall + percentOf(potAfterCall, size.Percent, stack-toCall+1)
		}
		if amount > toCall && amount <= stack {
			out = append(out, Sized{Size: size, Amount: amount})
		}
	}
	return out
}

// RaiseAmounts is Raises without the size rules.
func (c Config) RaiseAmounts(oop bool, pot, toCall, stack int) []int {
	return amounts(c.Raises(oop, pot, toCall, stack))
}

// HasAllIn reports whether the position's bet or raise list includes all-in.
func (c Config) HasAllIn(oop, facingBet bool) bool {
	var sizes []BetSize
	switch {
	case oop && facingBet:
		sizes = c.OOPRaise
	case oop:
		sizes = c.OOPBet
	case facingBet:
		sizes = c.IPRaise
	default:
		sizes = c.IPBet
	}
	for _, size := range sizes {
		if size.Kind == AllIn {
			return true
		}
	}
	return false
}

func amounts(sized []Sized) []int {
	out := make([]int, len(sized))
	for i, s := range sized {
		out[i] = s.Amount
	}
	return out
}
