package api

import (
	"fmt"

	"github.com/lox/deeppdcfr/internal/store"
	"github.com/lox/deeppdcfr/internal/strategy"
	"github.com/lox/deeppdcfr/poker"
	"github.com/lox/deeppdcfr/sdk/analysis"
	"github.com/lox/deeppdcfr/sdk/sizing"
)

// BetSizes is the request's sizing block. Omitted fields use the server
// defaults.
type BetSizes struct {
	OOPBet   *string `json:"oop_bet,omitempty"`
	OOPRaise *string `json:"oop_raise,omitempty"`
	IPBet    *string `json:"ip_bet,omitempty"`
	IPRaise  *string `json:"ip_raise,omitempty"`
}

// SolveRequest is the body of POST /v1/solve and of each websocket frame.
type SolveRequest struct {
	Player         *strategy.Position       `json:"player"`
	Board          string                   `json:"board"`
	EffectiveStack int                      `json:"effective_stack"`
	StartingPot    int                      `json:"starting_pot"`
	BetSizes       *BetSizes                `json:"bet_sizes,omitempty"`
	BettingHistory []strategy.HistoryAction `json:"betting_history,omitempty"`
	OOPRange       *string                  `json:"oop_range,omitempty"`
	IPRange        *string                  `json:"ip_range,omitempty"`
}

// ActionInfo describes one action at the node.
type ActionInfo struct {
	Name            string              `json:"name"`
	Type            strategy.ActionType `json:"type"`
	AmountBigBlinds float64             `json:"amount_big_blinds"`
	AmountPercent   float64             `json:"amount_percent"`
	Frequency       float64             `json:"frequency"`
}

// HandStrategy is the action mix of one combo.
type HandStrategy struct {
	Hand     string    `json:"hand"`
	HandID   uint16    `json:"hand_id"`
	Weight   float64   `json:"weight"`
	Strategy []float64 `json:"strategy"`
}

// SolveResponse is the answer for one decision node.
type SolveResponse struct {
	Player         strategy.Position `json:"player"`
	Board          string            `json:"board"`
	Pot            int               `json:"pot"`
	EffectiveStack int               `json:"effective_stack"`
	NumCombos      int               `json:"num_combos"`
	Actions        []ActionInfo      `json:"actions"`
	Combos         []HandStrategy    `json:"combos"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Version     string `json:"version"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Input validates the request and converts it for strategy.Solve.
func (r *SolveRequest) Input(defaults sizing.Config) (strategy.Input, error) {
	if r.Player == nil {
		return strategy.Input{}, invalid("player is required")
	}
	if r.EffectiveStack < 1 {
		return strategy.Input{}, invalid("effective_stack must be at least 1, got %d", r.EffectiveStack)
	}
	if r.StartingPot < 1 {
		return strategy.Input{}, invalid("starting_pot must be at least 1, got %d", r.StartingPot)
	}

	board, err := poker.ParseBoard(r.Board)
	if err != nil {
		return strategy.Input{}, err
	}
	sizes, err := r.BetSizes.config(defaults)
	if err != nil {
		return strategy.Input{}, err
	}
	oop, err := parseOptionalRange("oop_range", r.OOPRange)
	if err != nil {
		return strategy.Input{}, err
	}
	ip, err := parseOptionalRange("ip_range", r.IPRange)
	if err != nil {
		return strategy.Input{}, err
	}

	return strategy.Input{
		Player:         *r.Player,
		Board:          board,
		StartingPot:    r.StartingPot,
		EffectiveStack: r.EffectiveStack,
		Sizes:          sizes,
		History:        r.BettingHistory,
		OOPRange:       oop,
		IPRange:        ip,
	}, nil
}

func (b *BetSizes) config(defaults sizing.Config) (sizing.Config, error) {
	cfg := defaults
	if b == nil {
		return cfg, nil
	}
	fields := []struct {
		name  string
		value *string
		dst   *[]sizing.BetSize
	}{
		{"oop_bet", b.OOPBet, &cfg.OOPBet},
		{"oop_raise", b.OOPRaise, &cfg.OOPRaise},
		{"ip_bet", b.IPBet, &cfg.IPBet},
		{"ip_raise", b.IPRaise, &cfg.IPRaise},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		sizes, err := sizing.ParseBetSizes(*f.value)
		if err != nil {
			return sizing.Config{}, fmt.Errorf("bet_sizes.%s: %w", f.name, err)
		}
		*f.dst = sizes
	}
	return cfg, nil
}

func parseOptionalRange(field string, notation *string) (*analysis.Range, error) {
	if notation == nil {
		return nil, nil
	}
	r, err := analysis.ParseRange(*notation)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return r, nil
}

func newSolveResponse(player strategy.Position, res *strategy.Result) *SolveResponse {
	resp := &SolveResponse{
		Player:         player,
		Board:          poker.FormatBoard(res.Node.Board),
		Pot:            res.Node.TotalPot(),
		EffectiveStack: res.Node.EffectiveStack(),
		NumCombos:      len(res.Combos),
		Actions:        make([]ActionInfo, len(res.Actions)),
		Combos:         make([]HandStrategy, len(res.Combos)),
	}
	for i, a := range res.Actions {
		resp.Actions[i] = ActionInfo{
			Name:            a.Name,
			Type:            a.Type,
			AmountBigBlinds: float64(a.Amount),
			AmountPercent:   a.Percent,
			Frequency:       res.Frequencies[i],
		}
	}
	for i, c := range res.Combos {
		resp.Combos[i] = HandStrategy{
			Hand:     c.Combo.String(),
			HandID:   c.Combo.ID,
			Weight:   c.Weight,
			Strategy: c.Strategy,
		}
	}
	return resp
}

func (r *SolveResponse) record() store.SolveRecord {
	rec := store.SolveRecord{
		Player:         r.Player.String(),
		Board:          r.Board,
		Pot:            r.Pot,
		EffectiveStack: r.EffectiveStack,
		NumCombos:      r.NumCombos,
		Actions:        make([]store.ActionSummary, len(r.Actions)),
	}
	for i, a := range r.Actions {
		rec.Actions[i] = store.ActionSummary{Name: a.Name, Frequency: a.Frequency}
	}
	return rec
}
