package matchmaking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/linkarena/internal/model"
	"github.com/udisondev/linkarena/internal/testutil"
)

type mapCatalog struct {
	formats map[string]*model.GameFormat
	teams   map[int]*model.BuiltTeam
}

func (c mapCatalog) Format(name string) (*model.GameFormat, bool) {
	f, ok := c.formats[name]
	return f, ok
}

func (c mapCatalog) Team(id int) (*model.BuiltTeam, bool) {
	t, ok := c.teams[id]
	return t, ok
}

func newRequests(t *testing.T) (*Requests, *MemoryPool) {
	t.Helper()
	fe7 := testutil.GBAGame()
	fe8 := testutil.GBAGame()
	fe8.Name = "FE8"
	cat := mapCatalog{
		formats: map[string]*model.GameFormat{"fe7-open": {Name: "fe7-open", GameName: fe7.Name, Game: fe7}},
		teams: map[int]*model.BuiltTeam{
			1: {ID: 1, Owner: "p1", Game: fe7},
			2: {ID: 2, Owner: "p2", Game: fe7},
			3: {ID: 3, Owner: "p1", Game: fe8},
		},
	}
	pool := NewMemoryPool()
	q := NewRequests(pool, cat)
	q.now = func() time.Time { return t0 }
	return q, pool
}

func TestRequests_Submit(t *testing.T) {
	q, _ := newRequests(t)
	ctx := context.Background()

	id, err := q.Submit(ctx, "p1", 1, "fe7-open", 2)
	require.NoError(t, err)

	r, err := q.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.MatchRequest{
		ID: id, Owner: "p1", TeamID: 1, Format: "fe7-open", Players: 2,
		Status: model.RequestPending, CreatedAt: t0,
	}, *r)

	_, err = q.Submit(ctx, "p1", 1, "fe7-open", 3)
	assert.ErrorContains(t, err, "already has an open request")
}

func TestRequests_SubmitRejected(t *testing.T) {
	tests := []struct {
		name    string
		owner   string
		team    int
		format  string
		players int
		wantErr string
	}{
		{name: "too few players", owner: "p1", team: 1, format: "fe7-open", players: 1, wantErr: "players must be 2-4"},
		{name: "too many players", owner: "p1", team: 1, format: "fe7-open", players: 5, wantErr: "got 5"},
		{name: "unknown format", owner: "p1", team: 1, format: "fe6-open", players: 2, wantErr: `unknown format "fe6-open"`},
		{name: "unknown team", owner: "p1", team: 9, format: "fe7-open", players: 2, wantErr: "team 9 does not exist"},
		{name: "foreign team", owner: "p1", team: 2, format: "fe7-open", players: 2, wantErr: "does not belong to p1"},
		{name: "other game", owner: "p1", team: 3, format: "fe7-open", players: 2, wantErr: "built for FE8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, pool := newRequests(t)
			_, err := q.Submit(context.Background(), tt.owner, tt.team, tt.format, tt.players)
			require.Error(t, err)
			assert.True(t, model.IsValidation(err))
			assert.ErrorContains(t, err, tt.wantErr)
			_, err = pool.Get(context.Background(), 1)
			assert.ErrorIs(t, err, model.ErrRequestNotFound)
		})
	}
}
