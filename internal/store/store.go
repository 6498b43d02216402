// Package store keeps a PostgreSQL log of answered solve requests.
package store

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema embed.FS

// MaxRecent caps RecentSolves.
const MaxRecent = 500

// ActionSummary is the range-level frequency of one action.
type ActionSummary struct {
	Name      string  `json:"name"`
	Frequency float64 `json:"frequency"`
}

// SolveRecord is one answered solve request.
type SolveRecord struct {
	ID             int64           `json:"id"`
	CreatedAt      time.Time       `json:"created_at"`
	Player         string          `json:"player"`
	Board          string          `json:"board"`
	Pot            int             `json:"pot"`
	EffectiveStack int             `json:"effective_stack"`
	NumCombos      int             `json:"num_combos"`
	Actions        []ActionSummary `json:"actions"`
	Duration       time.Duration   `json:"-"`
	DurationMS     float64         `json:"duration_ms"`
}

type DB struct{ *pgxpool.Pool }

func Open(ctx context.Context, dsn string) (*DB, error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}
	return &DB{p}, nil
}

func (db *DB) Close() { db.Pool.Close() }

// Migrate applies the embedded schema. It is idempotent.
func (db *DB) Migrate(ctx context.Context) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

// RecordSolve inserts rec and returns its id.
func (db *DB) RecordSolve(ctx context.Context, rec SolveRecord) (int64, error) {
	actions, err := json.Marshal(rec.Actions)
	if err != nil {
		return 0, err
	}
	var id int64
	err = db.QueryRow(ctx, `
		INSERT INTO solves(player, board, pot, effective_stack, num_combos, actions, duration_ms)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`, rec.Player, rec.Board, rec.Pot, rec.EffectiveStack, rec.NumCombos, actions,
		float64(rec.Duration)/float64(time.Millisecond)).Scan(&id)
	return id, err
}

// RecentSolves returns up to limit records, newest first.
func (db *DB) RecentSolves(ctx context.Context, limit int) ([]SolveRecord, error) {
	limit = ClampLimit(limit)
	rows, err := db.Query(ctx, `
		SELECT id, created_at, player, board, pot, effective_stack, num_combos, actions, duration_ms
		  FROM solves
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SolveRecord{}
	for rows.Next() {
		var (
			rec     SolveRecord
			actions []byte
		)
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.Player, &rec.Board, &rec.Pot,
			&rec.EffectiveStack, &rec.NumCombos, &actions, &rec.DurationMS); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(actions, &rec.Actions); err != nil {
			return nil, fmt.Errorf("solve %d actions: %w", rec.ID, err)
		}
		rec.Duration = time.Duration(rec.DurationMS * float64(time.Millisecond))
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Solve fetches one record by id. ok is false when it does not exist.
func (db *DB) Solve(ctx context.Context, id int64) (rec SolveRecord, ok bool, err error) {
	var actions []byte
	err = db.QueryRow(ctx, `
		SELECT id, created_at, player, board, pot, effective_stack, num_combos, actions, duration_ms
		  FROM solves WHERE id = $1
	`, id).Scan(&rec.ID, &rec.CreatedAt, &rec.Player, &rec.Board, &rec.Pot,
		&rec.EffectiveStack, &rec.NumCombos, &actions, &rec.DurationMS)
	if errors.Is(err, pgx.ErrNoRows) {
		return SolveRecord{}, false, nil
	}
	if err != nil {
		return SolveRecord{}, false, err
	}
	if err := json.Unmarshal(actions, &rec.Actions); err != nil {
		return SolveRecord{}, false, err
	}
	rec.Duration = time.Duration(rec.DurationMS * float64(time.Millisecond))
	return rec, true, nil
}

// ClampLimit maps a requested page size into [1, MaxRecent], with 20 for
// non-positive values.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return 20
	case limit > MaxRecent:
		return MaxRecent
	}
	return limit
}
