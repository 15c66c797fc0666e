package db

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/linkarena/internal/game/actionlog"
	"github.com/udisondev/linkarena/internal/model"
	"github.com/udisondev/linkarena/internal/testutil"
)

func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	return testutil.SetupTestDB(t)
}

var created = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestMatchRequestRepository(t *testing.T) {
	pool := setupDB(t)
	repo := NewMatchRequestRepository(pool)
	ctx := testutil.ContextWithTimeout(t, time.Minute)

	t.Run("add and get", func(t *testing.T) {
		testutil.TruncateAll(t, pool)

		id, err := repo.Add(ctx, &model.MatchRequest{Owner: "p1", TeamID: 7, Format: "fe7-open", Players: 2, CreatedAt: created})
		require.NoError(t, err)

		got, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "p1", got.Owner)
		assert.Equal(t, 7, got.TeamID)
		assert.Equal(t, model.RequestPending, got.Status)
		assert.Empty(t, got.ArenaID)
		assert.True(t, created.Equal(got.CreatedAt))

		_, err = repo.Add(ctx, &model.MatchRequest{Owner: "p1", TeamID: 8, Format: "fe7-open", Players: 3, CreatedAt: created})
		assert.True(t, model.IsValidation(err), "second open request: %v", err)

		_, err = repo.Get(ctx, id+100)
		assert.ErrorIs(t, err, model.ErrRequestNotFound)
	})

	t.Run("drain", func(t *testing.T) {
		testutil.TruncateAll(t, pool)
		for i, owner := range []string{"p1", "p2", "p3"} {
			_, err := repo.Add(ctx, &model.MatchRequest{
				Owner: owner, TeamID: i + 1, Format: "fe7-open", Players: 2,
				CreatedAt: created.Add(time.Duration(i) * time.Second),
			})
			require.NoError(t, err)
		}

		var groups [][]int
		n, err := repo.Drain(ctx, func(_ context.Context, _ model.BucketKey, g []*model.MatchRequest) (string, error) {
			groups = append(groups, []int{g[0].TeamID, g[1].TeamID})
			return "arena-1", nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, [][]int{{1, 2}}, groups)

		got, err := repo.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, model.RequestMatched, got.Status)
		assert.Equal(t, "arena-1", got.ArenaID)
		got, err = repo.Get(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, model.RequestPending, got.Status)

		_, err = repo.Add(ctx, &model.MatchRequest{Owner: "p1", TeamID: 1, Format: "fe7-open", Players: 2, CreatedAt: created})
		assert.NoError(t, err, "a matched owner may queue again")
	})

	t.Run("concurrent drains place each request once", func(t *testing.T) {
		testutil.TruncateAll(t, pool)
		const players = 12
		for i := range players {
			_, err := repo.Add(ctx, &model.MatchRequest{
				Owner: fmt.Sprintf("p%d", i), TeamID: i + 1, Format: "fe7-open", Players: 2, CreatedAt: created,
			})
			require.NoError(t, err)
		}

		var (
			mu     sync.Mutex
			placed = make(map[int]int)
			arenas atomic.Int64
			wg     sync.WaitGroup
		)
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Drain(ctx, func(_ context.Context, _ model.BucketKey, g []*model.MatchRequest) (string, error) {
					mu.Lock()
					for _, r := range g {
						placed[r.TeamID]++
					}
					mu.Unlock()
					return fmt.Sprintf("arena-%d", arenas.Add(1)), nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(players/2), arenas.Load())
		assert.Len(t, placed, players)
		for team, n := range placed {
			assert.Equal(t, 1, n, "team %d", team)
		}
	})
}

func TestArenaRepository(t *testing.T) {
	pool := setupDB(t)
	repo := NewArenaRepository(pool)
	ctx := testutil.ContextWithTimeout(t, time.Minute)
	testutil.TruncateAll(t, pool)

	lyn := testutil.Unit(1, "Lyn", model.StatBlock{HP: 20})
	guy := testutil.Unit(2, "Guy", model.StatBlock{HP: 21})
	a := testutil.Arena(testutil.GBAGame(), testutil.Team(1, "p1", lyn), testutil.Team(2, "p2", guy))

	require.NoError(t, repo.SaveArena(ctx, a))
	require.NoError(t, repo.AppendLog(ctx, a.ID, 1, 0, actionlog.Log{
		actionlog.BeginTurn{},
		actionlog.Wait{},
		actionlog.EndTurn{},
		actionlog.ChangePhase{Phase: 1},
	}))
	a.Phase = 1
	require.NoError(t, repo.SaveArena(ctx, a))

	state, err := repo.Snapshot(ctx, a.ID)
	require.NoError(t, err)
	var snap struct {
		ID    string `json:"id"`
		Phase int    `json:"phase"`
	}
	require.NoError(t, json.Unmarshal(state, &snap))
	assert.Equal(t, a.ID, snap.ID)
	assert.Equal(t, 1, snap.Phase)

	rows, err := repo.Actions(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Turn)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(rows[0].Log, &records))
	require.Len(t, records, 4)
	assert.Equal(t, "change_phase", records[3]["action"])
	assert.EqualValues(t, 1, records[3]["phase"])

	require.NoError(t, repo.DeleteArena(ctx, a.ID))
	require.NoError(t, repo.DeleteArena(ctx, a.ID))
	_, err = repo.Snapshot(ctx, a.ID)
	assert.ErrorIs(t, err, model.ErrArenaNotFound)
	rows, err = repo.Actions(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
