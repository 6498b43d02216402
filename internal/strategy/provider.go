package strategy

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/deeppdcfr/poker"
	"github.com/lox/deeppdcfr/sdk/analysis"
)

// Spot is everything a Provider needs to answer one decision.
type Spot struct {
	Node    *Node
	Actions []Action
	Hero    *analysis.Range // acting player's range, filtered by the board
	Villain *analysis.Range // opponent's range, filtered by the board
}

// Provider produces one strategy vector per combo of spot.Hero, in the order
// of spot.Hero.Combos(). Each vector has one probability per action and sums
// to 1.
type Provider interface {
	Strategy(ctx context.Context, spot Spot) ([][]float64, error)
}

// Heuristic is a deterministic stand-in for a trained model. It scores each
// combo by showdown equity against the opponent's range (or by preflop
// category when there is no board) and maps the score to an action mix.
type Heuristic struct {
	Workers int // defaults to GOMAXPROCS
}

var _ Provider = Heuristic{}

// Strategy implements Provider.
func (h Heuristic) Strategy(ctx context.Context, spot Spot) ([][]float64, error) {
	combos := spot.Hero.Combos()
	out := make([][]float64, len(combos))
	if len(combos) == 0 {
		return out, nil
	}

	var showdown *analysis.Showdown
	if len(spot.Node.Board) > 0 {
		var err error
		showdown, err = analysis.NewShowdown(spot.Villain, spot.Node.Board)
		if err != nil {
			return nil, fmt.Errorf("score opponent range: %w", err)
		}
	}

	workers := h.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(combos))
	perWorker := (len(combos) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(combos); start += perWorker {
		end := min(start+perWorker, len(combos))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				strength, err := comboStrength(showdown, combos[i].Combo())
				if err != nil {
					return err
				}
				out[i] = mix(strength, spot.Node, spot.Actions)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func comboStrength(showdown *analysis.Showdown, combo poker.Combo) (float64, error) {
	if showdown == nil {
		return poker.CategorizeCombo(combo).Strength(), nil
	}
	eq, err := showdown.Equity(combo)
	if err != nil {
		return 0, err
	}
	return eq.Equity(), nil
}

// mix turns a strength in [0,1] into action probabilities. Strong hands bet
// or raise, choosing larger sizes as strength grows; very weak hands bluff a
// little when unopened; facing a bet, hands below the pot odds fold.
func mix(strength float64, n *Node, actions []Action) []float64 {
	vec := make([]float64, len(actions))

	passive, fold := -1, -1
	var aggressive []int
	for i, a := range actions {
		switch {
		case a.Type == Check || a.Type == Call:
			passive = i
		case a.Type == Fold:
			fold = i
		case a.Type.Aggressive():
			aggressive = append(aggressive, i)
		}
	}

	aggr := 0.0
	if len(aggressive) > 0 {
		aggr = clamp(2*strength-1, 0, 1) * 0.9
		if fold < 0 && strength < 0.25 {
			aggr += 0.25 - strength
		}
	}
	rest := 1 - aggr

	if fold >= 0 {
		toCall := float64(n.ToCall())
		potOdds := toCall / (float64(n.TotalPot()) + toCall)
		foldShare := 0.0
		if potOdds > 0 {
			foldShare = clamp((potOdds-strength)/potOdds, 0, 1)
		}
		vec[fold] = rest * foldShare
		rest -= vec[fold]
	}
	if passive >= 0 {
		vec[passive] = rest
	}

	if len(aggressive) > 0 {
		weights := make([]float64, len(aggressive))
		total := 0.0
		for k := range aggressive {
			t := 0.0
			if len(aggressive) > 1 {
				t = float64(k) / float64(len(aggressive)-1)
			}
			weights[k] = 1.1 - math.Abs(t-strength)
			total += weights[k]
		}
		for k, idx := range aggressive {
			vec[idx] = aggr * weights[k] / total
		}
	}

	return normalize(vec)
}

func normalize(vec []float64) []float64 {
	sum := 0.0
	for _, v := range vec {
		sum += v
	}
	if sum <= 0 {
		for i := range vec {
			vec[i] = 1 / float64(len(vec))
		}
		return vec
	}
	for i := range vec {
		vec[i] /= sum
	}
	return vec
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ActionFrequencies is the range-weighted mean of the strategy vectors. With
// no weight it returns zeros.
func ActionFrequencies(strategies [][]float64, weights []float64, numActions int) []float64 {
	freqs := make([]float64, numActions)
	total := 0.0
	for i, vec := range strategies {
		w := weights[i]
		total += w
		for j := range min(len(vec), numActions) {
			freqs[j] += vec[j] * w
		}
	}
	if total == 0 {
		return freqs
	}
	for j := range freqs {
		freqs[j] /= total
	}
	return freqs
}
