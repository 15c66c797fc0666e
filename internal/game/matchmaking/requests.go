package matchmaking

import (
	"context"
	"log/slog"
	"time"

	"github.com/udisondev/linkarena/internal/game/arena"
	"github.com/udisondev/linkarena/internal/model"
)

// Catalog resolves the formats and teams requests refer to.
type Catalog interface {
	Format(name string) (*model.GameFormat, bool)
	Team(id int) (*model.BuiltTeam, bool)
}

// Requests accepts match requests from players.
type Requests struct {
	pool    RequestPool
	catalog Catalog
	now     func() time.Time
}

// NewRequests creates a request front end over pool.
func NewRequests(pool RequestPool, cat Catalog) *Requests {
	return &Requests{pool: pool, catalog: cat, now: time.Now}
}

// Submit queues owner's team for an arena of the given format and size.
func (q *Requests) Submit(ctx context.Context, owner string, teamID int, format string, players int) (int64, error) {
	const op = "match request"
	if players < arena.MinTeams || players > arena.MaxTeams {
		return 0, model.InvalidOpf(op, "players must be %d-%d, got %d", arena.MinTeams, arena.MaxTeams, players)
	}
	f, ok := q.catalog.Format(format)
	if !ok {
		return 0, model.InvalidOpf(op, "unknown format %q", format)
	}
	t, ok := q.catalog.Team(teamID)
	if !ok {
		return 0, model.InvalidOpf(op, "team %d does not exist", teamID)
	}
	if t.Owner != owner {
		return 0, model.InvalidOpf(op, "team %d does not belong to %s", teamID, owner)
	}
	if t.Game != nil && f.Game != nil && t.Game.Name != f.Game.Name {
		return 0, model.InvalidOpf(op, "team %d is built for %s, format %q plays %s", teamID, t.Game.Name, format, f.Game.Name)
	}

	id, err := q.pool.Add(ctx, &model.MatchRequest{
		Owner:     owner,
		TeamID:    teamID,
		Format:    format,
		Players:   players,
		Status:    model.RequestPending,
		CreatedAt: q.now(),
	})
	if err != nil {
		return 0, err
	}
	slog.Debug("match request queued", "request", id, "owner", owner, "format", format, "players", players)
	return id, nil
}

// Status returns the request with id. Once matched, its ArenaID is set.
func (q *Requests) Status(ctx context.Context, id int64) (*model.MatchRequest, error) {
	return q.pool.Get(ctx, id)
}
