package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampLimit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want int
	}{
		{0, 20},
		{-3, 20},
		{1, 1},
		{50, 50},
		{MaxRecent, MaxRecent},
		{MaxRecent + 1, MaxRecent},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampLimit(tt.in), "limit %d", tt.in)
	}
}

func TestSchemaEmbedded(t *testing.T) {
	t.Parallel()
	b, err := schema.ReadFile("schema.sql")
	require.NoError(t, err)
	assert.Contains(t, string(b), "CREATE TABLE IF NOT EXISTS solves")
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("PDCFR_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("PDCFR_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, db.Migrate(ctx), "migrate is idempotent")
	return db
}

func TestRecordAndRecent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	rec := SolveRecord{
		Player:         "OOP",
		Board:          "Ah Kd Qc",
		Pot:            20,
		EffectiveStack: 100,
		NumCombos:      46,
		Actions: []ActionSummary{
			{Name: "Check", Frequency: 0.6},
			{Name: "Bet 33%", Frequency: 0.4},
		},
		Duration: 1500 * time.Microsecond,
	}
	id, err := db.RecordSolve(ctx, rec)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, ok, err := db.Solve(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec.Board, got.Board)
	assert.Equal(t, rec.Actions, got.Actions)
	assert.InDelta(t, 1.5, got.DurationMS, 1e-9)

	recent, err := db.RecentSolves(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)

	_, ok, err = db.Solve(ctx, -1)
	require.NoError(t, err)
	assert.False(t, ok)
}
