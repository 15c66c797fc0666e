package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/linkarena/internal/game/matchmaking"
	"github.com/udisondev/linkarena/internal/model"
)

// MatchRequestRepository keeps the match request pool in the match_requests table.
type MatchRequestRepository struct {
	pool *pgxpool.Pool
}

var _ matchmaking.RequestPool = (*MatchRequestRepository)(nil)

// NewMatchRequestRepository creates a new MatchRequestRepository.
func NewMatchRequestRepository(pool *pgxpool.Pool) *MatchRequestRepository {
	return &MatchRequestRepository{pool: pool}
}

const matchRequestColumns = `id, owner, team_id, format, players, status, COALESCE(arena_id, ''), created_at`

func scanMatchRequest(row pgx.Row) (*model.MatchRequest, error) {
	var r model.MatchRequest
	if err := row.Scan(&r.ID, &r.Owner, &r.TeamID, &r.Format, &r.Players, &r.Status, &r.ArenaID, &r.CreatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// Add inserts r as pending and returns its id. The partial unique index on
// owner rejects a second open request.
func (r *MatchRequestRepository) Add(ctx context.Context, req *model.MatchRequest) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO match_requests (owner, team_id, format, players, status, created_at)
		 VALUES ($1, $2, $3, $4, 'pending', $5)
		 RETURNING id`,
		req.Owner, req.TeamID, req.Format, req.Players, req.CreatedAt).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, model.InvalidOpf("match request", "%s already has an open request", req.Owner)
		}
		return 0, fmt.Errorf("insert match request: %w", err)
	}
	return id, nil
}

// Get loads the request with id.
func (r *MatchRequestRepository) Get(ctx context.Context, id int64) (*model.MatchRequest, error) {
	req, err := scanMatchRequest(r.pool.QueryRow(ctx,
		`SELECT `+matchRequestColumns+` FROM match_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", model.ErrRequestNotFound, id)
		}
		return nil, fmt.Errorf("query match request %d: %w", id, err)
	}
	return req, nil
}

// Drain locks every pending row for the length of one transaction, so
// concurrent drains in any process never place a request twice.
func (r *MatchRequestRepository) Drain(ctx context.Context, match matchmaking.MatchFunc) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin drain: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	rows, err := tx.Query(ctx,
		`SELECT `+matchRequestColumns+`
		 FROM match_requests
		 WHERE status = 'pending'
		 ORDER BY created_at, id
		 FOR UPDATE`)
	if err != nil {
		return 0, fmt.Errorf("query pending requests: %w", err)
	}
	var pending []*model.MatchRequest
	for rows.Next() {
		req, err := scanMatchRequest(rows)
		if err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan match request: %w", err)
		}
		pending = append(pending, req)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate pending requests: %w", err)
	}

	n, drainErr := matchmaking.DrainGroups(ctx, pending, match, func(req *model.MatchRequest, arenaID string) error {
		if _, err := tx.Exec(ctx,
			`UPDATE match_requests SET status = 'matched', arena_id = $2 WHERE id = $1`,
			req.ID, arenaID); err != nil {
			return fmt.Errorf("mark match request %d: %w", req.ID, err)
		}
		return nil
	})
	if err := tx.Commit(ctx); err != nil {
		return 0, errors.Join(drainErr, fmt.Errorf("commit drain: %w", err))
	}
	return n, drainErr
}
