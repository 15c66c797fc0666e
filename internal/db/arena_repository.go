package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/linkarena/internal/game/actionlog"
	"github.com/udisondev/linkarena/internal/game/arena"
	"github.com/udisondev/linkarena/internal/model"
)

// ArenaRepository journals live arenas: a JSONB snapshot per arena and the
// action log of every processed phase.
type ArenaRepository struct {
	pool *pgxpool.Pool
}

var _ arena.Journal = (*ArenaRepository)(nil)

// NewArenaRepository creates a new ArenaRepository.
func NewArenaRepository(pool *pgxpool.Pool) *ArenaRepository {
	return &ArenaRepository{pool: pool}
}

// ArenaActionRow is one journaled phase.
type ArenaActionRow struct {
	ID        int64
	Turn      int
	Phase     int
	Log       json.RawMessage
	CreatedAt time.Time
}

// SaveArena upserts the snapshot of a.
func (r *ArenaRepository) SaveArena(ctx context.Context, a *model.Arena) error {
	state, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode arena %s: %w", a.ID, err)
	}
	format := ""
	if a.Format != nil {
		format = a.Format.Name
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO arena_snapshots (id, format, turn, phase, game_over, state, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW())
		 ON CONFLICT (id) DO UPDATE SET
		     turn = EXCLUDED.turn,
		     phase = EXCLUDED.phase,
		     game_over = EXCLUDED.game_over,
		     state = EXCLUDED.state,
		     updated_at = NOW()`,
		a.ID, format, a.Turn, a.Phase, a.GameOver, state)
	if err != nil {
		return fmt.Errorf("upsert arena %s: %w", a.ID, err)
	}
	return nil
}

// AppendLog stores the records a phase produced.
func (r *ArenaRepository) AppendLog(ctx context.Context, arenaID string, turn, phase int, l actionlog.Log) error {
	raw, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode log of arena %s: %w", arenaID, err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO arena_actions (arena_id, turn, phase, log) VALUES ($1, $2, $3, $4)`,
		arenaID, turn, phase, raw)
	if err != nil {
		return fmt.Errorf("insert log of arena %s: %w", arenaID, err)
	}
	return nil
}

// DeleteArena removes the snapshot and journal of arena id. Deleting an
// unknown arena is a no-op.
func (r *ArenaRepository) DeleteArena(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM arena_snapshots WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete arena %s: %w", id, err)
	}
	return nil
}

// Snapshot returns the stored JSON state of arena id.
func (r *ArenaRepository) Snapshot(ctx context.Context, id string) (json.RawMessage, error) {
	var state json.RawMessage
	err := r.pool.QueryRow(ctx, `SELECT state FROM arena_snapshots WHERE id = $1`, id).Scan(&state)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", model.ErrArenaNotFound, id)
		}
		return nil, fmt.Errorf("query arena %s: %w", id, err)
	}
	return state, nil
}

// Actions returns the journal of arena id in the order it was written.
func (r *ArenaRepository) Actions(ctx context.Context, id string) ([]ArenaActionRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, turn, phase, log, created_at
		 FROM arena_actions WHERE arena_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("query actions of arena %s: %w", id, err)
	}
	defer rows.Close()

	var result []ArenaActionRow
	for rows.Next() {
		var row ArenaActionRow
		if err := rows.Scan(&row.ID, &row.Turn, &row.Phase, &row.Log, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan arena action: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
