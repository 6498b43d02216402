package strategy

import (
	"errors"
	"math"
	"testing"

	"github.com/lox/deeppdcfr/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(v float64) *float64 { return &v }

func card(s string) *string { return &s }

func flopNode(t *testing.T) *Node {
	t.Helper()
	n, err := NewNode(poker.MustParseBoard("Ah Kd Qc"), 20, 100)
	require.NoError(t, err)
	return n
}

// history numbers the actions in order.
func history(actions ...HistoryAction) []HistoryAction {
	for i := range actions {
		actions[i].Order = i + 1
	}
	return actions
}

func TestNewNode(t *testing.T) {
	t.Parallel()
	n := flopNode(t)
	assert.Equal(t, Flop, n.Street)
	assert.Equal(t, OOP, n.ToAct)
	assert.Equal(t, 20, n.TotalPot())
	assert.Equal(t, [2]int{100, 100}, n.Stacks)
	assert.Zero(t, n.ToCall())
	assert.Equal(t, 100, n.EffectiveStack())
	assert.False(t, n.Terminal())
	assert.False(t, n.AwaitingDeal())

	pre, err := NewNode(nil, 3, 100)
	require.NoError(t, err)
	assert.Equal(t, Preflop, pre.Street)

	tests := []struct {
		name  string
		board string
		pot   int
		stack int
	}{
		{"two card board", "Ah Kd", 20, 100},
		{"six card board", "Ah Kd Qc 2s 3s 4s", 20, 100},
		{"duplicate board card", "Ah Ah Qc", 20, 100},
		{"negative pot", "Ah Kd Qc", -1, 100},
		{"negative stack", "Ah Kd Qc", 20, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewNode(poker.MustParseBoard(tt.board), tt.pot, tt.stack)
			assert.Error(t, err)
		})
	}
}

func TestReplayCheckCheckDeal(t *testing.T) {
	t.Parallel()
	root := flopNode(t)

	n, err := Replay(root, history(
		HistoryAction{Position: OOP, Action: Check},
		HistoryAction{Position: IP, Action: Check},
	))
	require.NoError(t, err)
	assert.True(t, n.Closed)
	assert.True(t, n.AwaitingDeal())
	assert.False(t, n.Terminal())

	_, err = Actions(n, defaultSizes())
	var spotErr *SpotError
	assert.True(t, errors.As(err, &spotErr))

	n, err = Replay(root, history(
		HistoryAction{Position: OOP, Action: Check},
		HistoryAction{Position: IP, Action: Check},
		HistoryAction{Action: Deal, Card: card("7s")},
	))
	require.NoError(t, err)
	assert.Equal(t, Turn, n.Street)
	assert.Equal(t, "Ah Kd Qc 7s", poker.FormatBoard(n.Board))
	assert.Equal(t, OOP, n.ToAct)
	assert.False(t, n.Closed)
	assert.Equal(t, 20, n.TotalPot())

	assert.Len(t, root.Board, 3, "replay does not modify the root")
	assert.False(t, root.Closed)
}

func TestReplayBetRaiseCall(t *testing.T) {
	t.Parallel()
	n, err := Replay(flopNode(t), history(
		HistoryAction{Position: OOP, Action: Bet, AmountPercent: pct(50)},
	))
	require.NoError(t, err)
	assert.Equal(t, [2]int{10, 0}, n.Bets)
	assert.Equal(t, IP, n.ToAct)
	assert.Equal(t, 10, n.ToCall())
	assert.Equal(t, 30, n.TotalPot())

	// Raise is the call plus 50% of the 40 chip pot after calling.
	n, err = Replay(flopNode(t), history(
		HistoryAction{Position: OOP, Action: Bet, AmountPercent: pct(50)},
		HistoryAction{Position: IP, Action: Raise, AmountPercent: pct(50)},
	))
	require.NoError(t, err)
	assert.Equal(t, [2]int{10, 30}, n.Bets)
	assert.Equal(t, OOP, n.ToAct)
	assert.Equal(t, 20, n.ToCall())

	n, err = Replay(flopNode(t), history(
		HistoryAction{Position: OOP, Action: Bet, AmountPercent: pct(50)},
		HistoryAction{Position: IP, Action: Raise, AmountPercent: pct(50)},
		HistoryAction{Position: OOP, Action: Call},
		HistoryAction{Action: Deal, Card: card("2h")},
	))
	require.NoError(t, err)
	assert.Equal(t, Turn, n.Street)
	assert.Equal(t, 80, n.Pot)
	assert.Equal(t, [2]int{70, 70}, n.Stacks)
	assert.Equal(t, [2]int{0, 0}, n.Bets)
}

func TestReplayHugePercentSaturates(t *testing.T) {
	t.Parallel()
	n, err := Replay(flopNode(t), history(
		HistoryAction{Position: OOP, Action: Bet, AmountPercent: pct(1e19)},
	))
	require.NoError(t, err)
	assert.Equal(t, [2]int{100, 0}, n.Bets)
	assert.Equal(t, [2]int{0, 100}, n.Stacks)

	n, err = Replay(flopNode(t), history(
		HistoryAction{Position: OOP, Action: Bet, AmountPercent: pct(50)},
		HistoryAction{Position: IP, Action: Raise, AmountPercent: pct(math.MaxFloat64)},
	))
	require.NoError(t, err)
	assert.Equal(t, [2]int{10, 100}, n.Bets)
	assert.Equal(t, 90, n.ToCall())
}

func TestReplayTerminal(t *testing.T) {
	t.Parallel()
	t.Run("fold", func(t *testing.T) {
		t.Parallel()
		n, err := Replay(flopNode(t), history(
			HistoryAction{Position: OOP, Action: Bet, AmountPercent: pct(33)},
			HistoryAction{Position: IP, Action: Fold},
		))
		require.NoError(t, err)
		assert.True(t, n.Terminal())
		assert.Equal(t, IP, n.Folder)

		_, err = Actions(n, defaultSizes())
		var spotErr *SpotError
		require.True(t, errors.As(err, &spotErr))
		assert.Contains(t, spotErr.Reason, "IP folded")
	})

	t.Run("all-in called", func(t *testing.T) {
		t.Parallel()
		n, err := Replay(flopNode(t), history(
			HistoryAction{Position: OOP, Action: AllIn},
			HistoryAction{Position: IP, Action: AllIn},
		))
		require.NoError(t, err)
		assert.True(t, n.Terminal())
		assert.Equal(t, [2]int{0, 0}, n.Stacks)
		assert.Equal(t, 220, n.TotalPot())

		_, err = Replay(flopNode(t), history(
			HistoryAction{Position: OOP, Action: AllIn},
			HistoryAction{Position: IP, Action: Call},
			HistoryAction{Action: Deal, Card: card("2h")},
		))
		assert.Error(t, err, "no deal after the hand is over")
	})

	t.Run("river closes", func(t *testing.T) {
		t.Parallel()
		river, err := NewNode(poker.MustParseBoard("Ah Kd Qc 7s 2h"), 20, 100)
		require.NoError(t, err)
		n, err := Replay(river, history(
			HistoryAction{Position: OOP, Action: Check},
			HistoryAction{Position: IP, Action: Check},
		))
		require.NoError(t, err)
		assert.True(t, n.Terminal())
		assert.False(t, n.AwaitingDeal())
	})
}

func TestReplayErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		history   []HistoryAction
		wantOrder int
		wantErr   string
	}{
		{
			name:      "out of turn",
			history:   history(HistoryAction{Position: IP, Action: Check}),
			wantOrder: 1,
			wantErr:   "out of turn",
		},
		{
			name:      "order gap",
			history:   []HistoryAction{{Order: 2, Position: OOP, Action: Check}},
			wantOrder: 2,
			wantErr:   "expected order 1",
		},
		{
			name: "check facing a bet",
			history: history(
				HistoryAction{Position: OOP, Action: Bet, AmountPercent: pct(50)},
				HistoryAction{Position: IP, Action: Check},
			),
			wantOrder: 2,
			wantErr:   "cannot check",
		},
		{
			name: "bet facing a bet",
			history: history(
				HistoryAction{Position: OOP, Action: Bet, AmountPercent: pct(50)},
				HistoryAction{Position: IP, Action: Bet, AmountPercent: pct(50)},
			),
			wantOrder: 2,
			wantErr:   "raise instead",
		},
		{
			name:      "raise unopened",
			history:   history(HistoryAction{Position: OOP, Action: Raise, AmountPercent: pct(50)}),
			wantOrder: 1,
			wantErr:   "bet instead",
		},
		{
			name:      "call unopened",
			history:   history(HistoryAction{Position: OOP, Action: Call}),
			wantOrder: 1,
			wantErr:   "cannot call",
		},
		{
			name:      "fold unopened",
			history:   history(HistoryAction{Position: OOP, Action: Fold}),
			wantOrder: 1,
			wantErr:   "cannot fold",
		},
		{
			name:      "bet without amount",
			history:   history(HistoryAction{Position: OOP, Action: Bet}),
			wantOrder: 1,
			wantErr:   "requires amount_percent",
		},
		{
			name:      "bet with zero amount",
			history:   history(HistoryAction{Position: OOP, Action: Bet, AmountPercent: pct(0)}),
			wantOrder: 1,
			wantErr:   "must be positive",
		},
		{
			name:      "deal before betting closes",
			history:   history(HistoryAction{Action: Deal, Card: card("7s")}),
			wantOrder: 1,
			wantErr:   "cannot deal",
		},
		{
			name: "deal a board card",
			history: history(
				HistoryAction{Position: OOP, Action: Check},
				HistoryAction{Position: IP, Action: Check},
				HistoryAction{Action: Deal, Card: card("Kd")},
			),
			wantOrder: 3,
			wantErr:   "already on the board",
		},
		{
			name: "deal an invalid card",
			history: history(
				HistoryAction{Position: OOP, Action: Check},
				HistoryAction{Position: IP, Action: Check},
				HistoryAction{Action: Deal, Card: card("Xx")},
			),
			wantOrder: 3,
			wantErr:   "invalid card",
		},
		{
			name: "deal without a card",
			history: history(
				HistoryAction{Position: OOP, Action: Check},
				HistoryAction{Position: IP, Action: Check},
				HistoryAction{Action: Deal},
			),
			wantOrder: 3,
			wantErr:   "requires a card",
		},
		{
			name: "action after street closes",
			history: history(
				HistoryAction{Position: OOP, Action: Check},
				HistoryAction{Position: IP, Action: Check},
				HistoryAction{Position: OOP, Action: Check},
			),
			wantOrder: 3,
			wantErr:   "a card must be dealt",
		},
		{
			name:      "unknown action",
			history:   history(HistoryAction{Position: OOP, Action: "limp"}),
			wantOrder: 1,
			wantErr:   "unknown action",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Replay(flopNode(t), tt.history)
			require.Error(t, err)

			var histErr *HistoryError
			require.True(t, errors.As(err, &histErr))
			assert.Equal(t, tt.wantOrder, histErr.Order)
			assert.Contains(t, histErr.Reason, tt.wantErr)
		})
	}
}

func TestPositionText(t *testing.T) {
	t.Parallel()
	var p Position
	require.NoError(t, p.UnmarshalText([]byte("ip")))
	assert.Equal(t, IP, p)
	assert.Equal(t, OOP, p.Other())

	text, err := OOP.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "OOP", string(text))

	assert.Error(t, p.UnmarshalText([]byte("BTN")))

	var a ActionType
	require.NoError(t, a.UnmarshalText([]byte("ALLIN")))
	assert.Equal(t, AllIn, a)
	assert.Error(t, a.UnmarshalText([]byte("shove")))
}
