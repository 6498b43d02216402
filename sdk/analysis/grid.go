package analysis

import (
	"github.com/lox/deeppdcfr/poker"
)

// GridSize is the number of rows and columns in a hand class grid.
const GridSize = 13

// GridCell aggregates the combos of one hand class.
type GridCell struct {
	Class        string
	Combos       int     // combos of the class present in the range
	Total        int     // 6 for pairs, 4 suited, 12 offsuit
	Weight       float64 // sum of frequencies
	MaxFrequency float64
	Uniform      bool // every present combo has the same frequency
}

// MeanFrequency is the class weight over all of its combos, present or not.
func (c GridCell) MeanFrequency() float64 {
	if c.Total == 0 {
		return 0
	}
	return c.Weight / float64(c.Total)
}

// Grid is the standard 13x13 starting hand chart. Row and column 0 are aces.
// Pairs sit on the diagonal, suited hands above it and offsuit hands below.
type Grid struct {
	Cells [GridSize][GridSize]GridCell
}

// NewGrid returns a grid with class names and totals but no combos.
func NewGrid() *Grid {
	g := &Grid{}
	for row := range GridSize {
		for col := range GridSize {
			hi, lo := gridRank(row), gridRank(col)
			cell := &g.Cells[row][col]
			switch {
			case row == col:
				cell.Class = hi.String() + hi.String()
				cell.Total = 6
			case row < col:
				cell.Class = hi.String() + lo.String() + "s"
				cell.Total = 4
			default:
				cell.Class = lo.String() + hi.String() + "o"
				cell.Total = 12
			}
			cell.Uniform = true
		}
	}
	return g
}

func gridRank(i int) poker.Rank {
	return poker.Ace - poker.Rank(i)
}

func gridIndex(r poker.Rank) int {
	return int(poker.Ace - r)
}

// GridPosition returns the row and column of a combo's hand class.
func GridPosition(c poker.Combo) (row, col int) {
	hi, lo := c.Card1.Rank(), c.Card2.Rank()
	if lo > hi {
		hi, lo = lo, hi
	}
	if c.Suited() || c.Pair() {
		return gridIndex(hi), gridIndex(lo)
	}
	return gridIndex(lo), gridIndex(hi)
}

// Grid aggregates the range by hand class.
func (r *Range) Grid() *Grid {
	g := NewGrid()
	all := poker.AllCombos()
	for id, freq := range r.combos {
		row, col := GridPosition(all[id])
		g.add(row, col, freq)
	}
	return g
}

func (g *Grid) add(row, col int, freq float64) {
	cell := &g.Cells[row][col]
	if cell.Combos > 0 && cell.MaxFrequency != freq {
		cell.Uniform = false
	}
	cell.Combos++
	cell.Weight += freq
	cell.MaxFrequency = max(cell.MaxFrequency, freq)
}

// Cell returns the cell for a hand class like "AKs", or false if the class
// name is malformed.
func (g *Grid) Cell(class string) (GridCell, bool) {
	for row := range GridSize {
		for col := range GridSize {
			if g.Cells[row][col].Class == class {
				return g.Cells[row][col], true
			}
		}
	}
	return GridCell{}, false
}
