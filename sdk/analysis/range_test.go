package analysis

import (
	"errors"
	"testing"

	"github.com/lox/deeppdcfr/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		notation string
		wantSize int
		wantErr  bool
	}{
		{
			name:     "pocket aces",
			notation: "AA",
			wantSize: 6, // 6 combinations
		},
		{
			name:     "ace king suited",
			notation: "AKs",
			wantSize: 4, // 4 suited combinations
		},
		{
			name:     "ace king offsuit",
			notation: "AKo",
			wantSize: 12, // 12 offsuit combinations
		},
		{
			name:     "ace king any",
			notation: "AK",
			wantSize: 16, // 4 suited + 12 offsuit
		},
		{
			name:     "multiple hands",
			notation: "AA,KK,AKs",
			wantSize: 16, // 6 + 6 + 4
		},
		{
			name:     "pocket pairs range",
			notation: "TT+",
			wantSize: 30, // TT,JJ,QQ,KK,AA = 5 * 6
		},
		{
			name:     "suited range plus",
			notation: "ATs+",
			wantSize: 16, // AT,AJ,AQ,AK suited = 4 * 4
		},
		{
			name:     "offsuit range plus",
			notation: "KJo+",
			wantSize: 24, // KJ,KQ offsuit = 2 * 12
		},
		{
			name:     "every pair",
			notation: "22+",
			wantSize: 78,
		},
		{
			name:     "dash range pairs",
			notation: "22-55",
			wantSize: 24, // 22,33,44,55 = 4 * 6
		},
		{
			name:     "dash range pairs reversed",
			notation: "55-22",
			wantSize: 24,
		},
		{
			name:     "dash range suited",
			notation: "A5s-A2s",
			wantSize: 16, // A5s,A4s,A3s,A2s = 4 * 4
		},
		{
			name:     "complex range",
			notation: "TT+,AJs+,KQs",
			wantSize: 46, // 30 + 12 + 4
		},
		{
			name:     "whitespace around tokens",
			notation: " AA , KK ",
			wantSize: 12,
		},
		{
			name:     "reversed rank order",
			notation: "KAs",
			wantSize: 4,
		},
		{
			name:     "lower case",
			notation: "aks,qq",
			wantSize: 10,
		},
		{
			name:     "pair with offsuit modifier",
			notation: "AAo",
			wantSize: 6,
		},
		{
			name:     "pair plus ignores suited modifier",
			notation: "22s+",
			wantSize: 78,
		},
		{
			name:     "pair dash ignores suited modifier",
			notation: "22s-44s",
			wantSize: 18,
		},
		{
			name:     "pair dash ignores offsuit modifier",
			notation: "QQo-KKo",
			wantSize: 12,
		},
		{
			name:     "offsuit dash reaching the pair",
			notation: "AKo-AAo",
			wantSize: 18, // 12 offsuit + 6 aces
		},
		{
			name:     "empty",
			notation: "",
			wantSize: 0,
		},
		{
			name:     "only separators",
			notation: " , ,",
			wantSize: 0,
		},
		{
			name:     "overlapping tokens",
			notation: "AK,AKs",
			wantSize: 16,
		},
		{
			name:     "invalid notation",
			notation: "XX",
			wantErr:  true,
		},
		{
			name:     "invalid modifier",
			notation: "AKx",
			wantErr:  true,
		},
		{
			name:     "pocket pair with suited modifier",
			notation: "AAs",
			wantErr:  true,
		},
		{
			name:     "single character",
			notation: "A",
			wantErr:  true,
		},
		{
			name:     "too long",
			notation: "AKso",
			wantErr:  true,
		},
		{
			name:     "frequency above one",
			notation: "QQ:1.5",
			wantErr:  true,
		},
		{
			name:     "negative frequency",
			notation: "QQ:-0.1",
			wantErr:  true,
		},
		{
			name:     "non numeric frequency",
			notation: "QQ:abc",
			wantErr:  true,
		},
		{
			name:     "plus with no combos",
			notation: "KA+",
			wantErr:  true,
		},
		{
			name:     "suited dash reaching the pair",
			notation: "AKs-AAs",
			wantErr:  true,
		},
		{
			name:     "dash with different first rank",
			notation: "AK-QJ",
			wantErr:  true,
		},
		{
			name:     "dash with three parts",
			notation: "22-33-44",
			wantErr:  true,
		},
		{
			name:     "one bad token fails the whole range",
			notation: "AA,KK,ZZ",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, err := ParseRange(tt.notation)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseRange() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				assert.Nil(t, r)
				return
			}
			if r.Len() != tt.wantSize {
				t.Errorf("ParseRange() size = %v, want %v", r.Len(), tt.wantSize)
			}
			assert.Equal(t, tt.wantSize == 0, r.IsEmpty())
		})
	}
}

func TestRangeErrorNamesToken(t *testing.T) {
	t.Parallel()
	_, err := ParseRange("AA, QQ:2")
	require.Error(t, err)

	var rangeErr *RangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, "QQ:2", rangeErr.Token)
	assert.Contains(t, err.Error(), "QQ:2")

	_, err = ParseRange("AA,AKx")
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, "AKx", rangeErr.Token)
	assert.Contains(t, rangeErr.Reason, "modifier")
}

func TestRangeFrequencies(t *testing.T) {
	t.Parallel()
	aceSpades := poker.MustParseCard("As")
	aceHearts := poker.MustParseCard("Ah")
	kingSpades := poker.MustParseCard("Ks")
	kingHearts := poker.MustParseCard("Kh")

	id := func(a, b poker.Card) int {
		id, err := poker.ComboID(a, b)
		require.NoError(t, err)
		return id
	}

	r := MustParseRange("AA:0.5,QQ:0")
	assert.Equal(t, 0.5, r.Frequency(id(aceSpades, aceHearts)))
	assert.Equal(t, 12, r.Len(), "zero frequency combos are still members")
	assert.Equal(t, 3.0, r.TotalWeight())

	t.Run("later token wins", func(t *testing.T) {
		t.Parallel()
		r := MustParseRange("AA:0.5,AA")
		assert.Equal(t, 1.0, r.Frequency(id(aceSpades, aceHearts)))

		r = MustParseRange("AA,AA:0.25")
		assert.Equal(t, 0.25, r.Frequency(id(aceSpades, aceHearts)))

		r = MustParseRange("AK,AKs:0.5")
		assert.Equal(t, 0.5, r.Frequency(id(aceSpades, kingSpades)))
		assert.Equal(t, 1.0, r.Frequency(id(aceSpades, kingHearts)))
		assert.Equal(t, 16, r.Len())
	})

	t.Run("absent combos", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.0, r.Frequency(id(kingSpades, kingHearts)))
		assert.Equal(t, 0.0, r.Frequency(-1))
		assert.Equal(t, 0.0, r.Frequency(poker.NumCombos))
	})
}

func TestRangeContains(t *testing.T) {
	t.Parallel()
	r, err := ParseRange("AA,KK,AKs")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		card1 string
		card2 string
		want  bool
	}{
		{"Ah", "As", true},  // AA
		{"Kh", "Kd", true},  // KK
		{"Ah", "Kh", true},  // AKs
		{"Kh", "Ah", true},  // order does not matter
		{"Ah", "Kd", false}, // AKo not in range
		{"Qh", "Qd", false}, // QQ not in range
		{"Qh", "Qh", false}, // not a combo
	}

	for _, tt := range tests {
		got := r.Contains(poker.MustParseCard(tt.card1), poker.MustParseCard(tt.card2))
		if got != tt.want {
			t.Errorf("Contains(%s,%s) = %v, want %v", tt.card1, tt.card2, got, tt.want)
		}
	}
}

func TestRangeDashNotation(t *testing.T) {
	t.Parallel()
	// Test pocket pair ranges
	r1 := MustParseRange("22-44")
	if r1.Len() != 18 { // 3 pairs * 6 combos each
		t.Errorf("22-44 should have 18 combos, got %d", r1.Len())
	}

	// Test suited ranges
	r2 := MustParseRange("K9s-K6s")
	if r2.Len() != 16 { // 4 hands * 4 suited combos
		t.Errorf("K9s-K6s should have 16 combos, got %d", r2.Len())
	}

	// Test offsuit ranges
	r3 := MustParseRange("A5o-A2o")
	if r3.Len() != 48 { // 4 hands * 12 offsuit combos
		t.Errorf("A5o-A2o should have 48 combos, got %d", r3.Len())
	}

	// The start token's modifier applies to the whole sweep
	r4 := MustParseRange("AQs-ATo")
	assert.Equal(t, 12, r4.Len())
	assert.True(t, r4.Contains(poker.MustParseCard("As"), poker.MustParseCard("Ts")))
	assert.False(t, r4.Contains(poker.MustParseCard("As"), poker.MustParseCard("Td")))
}

func TestRangePlusNotation(t *testing.T) {
	t.Parallel()
	// Test pocket pairs plus
	r1 := MustParseRange("JJ+")
	if r1.Len() != 24 { // JJ,QQ,KK,AA = 4 * 6
		t.Errorf("JJ+ should have 24 combos, got %d", r1.Len())
	}

	// Test suited plus
	r2 := MustParseRange("K9s+")
	if r2.Len() != 16 { // K9s,KTs,KJs,KQs = 4 * 4
		t.Errorf("K9s+ should have 16 combos, got %d", r2.Len())
	}

	// Test any plus
	r3 := MustParseRange("AT+")
	if r3.Len() != 64 { // AT,AJ,AQ,AK = 4 * 16
		t.Errorf("AT+ should have 64 combos, got %d", r3.Len())
	}

	// A plus never reaches the pair
	assert.False(t, r3.Contains(poker.MustParseCard("As"), poker.MustParseCard("Ah")))
}

func TestRangeCombos(t *testing.T) {
	t.Parallel()
	r := MustParseRange("AA")

	combos := r.Combos()
	require.Len(t, combos, 6)
	for i, wc := range combos {
		if i > 0 {
			assert.Less(t, combos[i-1].ID, wc.ID)
		}
		c := wc.Combo()
		assert.Equal(t, poker.Ace, c.Card1.Rank())
		assert.Equal(t, poker.Ace, c.Card2.Rank())
		assert.Equal(t, 1.0, wc.Frequency)
	}
	assert.Equal(t, "AsAh", combos[0].Combo().String())
}

func TestFullRange(t *testing.T) {
	t.Parallel()
	r := FullRange()
	assert.Equal(t, poker.NumCombos, r.Len())
	assert.Equal(t, float64(poker.NumCombos), r.TotalWeight())

	filtered := r.FilterBlocked(poker.MustParseBoard("Ah Kd Qc"))
	assert.Equal(t, 49*48/2, filtered.Len())
}

func TestFilterBlocked(t *testing.T) {
	t.Parallel()
	r := MustParseRange("AA:0.5,KK,72o")
	board := poker.MustParseBoard("Ah 7c 2d")

	filtered := r.FilterBlocked(board)
	assert.Equal(t, 3+6+7, filtered.Len()) // AA loses Ah, 72o keeps 3x3 minus 7s2s and 7h2h
	assert.Equal(t, 24, r.Len(), "filtering returns a new range")

	for _, wc := range filtered.Combos() {
		assert.False(t, wc.Combo().IsBlockedBy(board))
		assert.Equal(t, r.Frequency(int(wc.ID)), wc.Frequency)
	}

	assert.Equal(t, r.Len(), r.FilterBlocked(nil).Len())
	assert.True(t, NewRange().FilterBlocked(board).IsEmpty())
}

// A representative solve input: the acting range after a dry ace-high flop.
func TestFilterBlockedScenario(t *testing.T) {
	t.Parallel()
	r := MustParseRange("AA,AKs,AKo,KK,QQ:0.5,JJ-99,AQs-ATs,KQs")
	filtered := r.FilterBlocked(poker.MustParseBoard("Ah Kd Qc"))
	require.Equal(t, 46, filtered.Len())

	grid := filtered.Grid()
	want := map[string]int{
		"AA": 3, "AKs": 2, "AKo": 7, "KK": 3, "QQ": 3,
		"JJ": 6, "TT": 6, "99": 6,
		"AQs": 2, "AJs": 3, "ATs": 3, "KQs": 2,
	}
	total := 0
	for class, count := range want {
		cell, ok := grid.Cell(class)
		require.True(t, ok, class)
		assert.Equal(t, count, cell.Combos, class)
		total += cell.Combos
	}
	assert.Equal(t, 46, total)

	queens, _ := grid.Cell("QQ")
	assert.InDelta(t, 1.5, queens.Weight, 1e-9)
	assert.InDelta(t, 44.5, filtered.TotalWeight(), 1e-9)
}

func TestRangeString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "AA,AKs,QQ:0.5", MustParseRange("QQ:0.5,AKs,AA").String())
	assert.Equal(t, "", NewRange().String())

	filtered := MustParseRange("AKs").FilterBlocked(poker.MustParseBoard("Ah"))
	assert.Equal(t, "AKs[3/4]", filtered.String())
}

func BenchmarkParseRange(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = ParseRange("22+,A2s+,K9s+,QTs+,JTs,ATo+,KJo+")
	}
}
