package poker

// HoleCardCategory represents the preflop strength category of a combo
type HoleCardCategory string

const (
	CategoryPremium HoleCardCategory = "Premium"
	CategoryStrong  HoleCardCategory = "Strong"
	CategoryMedium  HoleCardCategory = "Medium"
	CategoryWeak    HoleCardCategory = "Weak"
	CategoryTrash   HoleCardCategory = "Trash"
)

// Strength maps the category onto [0,1], Premium highest.
func (c HoleCardCategory) Strength() float64 {
	switch c {
	case CategoryPremium:
		return 0.95
	case CategoryStrong:
		return 0.8
	case CategoryMedium:
		return 0.6
	case CategoryWeak:
		return 0.35
	default:
		return 0.1
	}
}

// CategorizeCombo provides a simple preflop hand categorization.
// Categories: Premium (JJ+, AK), Strong (TT, AQ/AJ), Medium (77-99, suited broadway),
// Weak (small pairs, suited connectors), Trash (everything else).
func CategorizeCombo(c Combo) HoleCardCategory {
	small, big := c.Card1.Rank(), c.Card2.Rank()
	if small > big {
		small, big = big, small
	}
	suited := c.Suited()
	isPair := small == big

	switch {
	case isPair && small >= Jack, small == King && big == Ace:
		return CategoryPremium
	case isPair && small == Ten, big == Ace && (small == Queen || small == Jack):
		return CategoryStrong
	case isPair && small >= Seven, suited && small >= Ten:
		return CategoryMedium
	case isPair, suited && big-small <= 2:
		return CategoryWeak
	default:
		return CategoryTrash
	}
}
