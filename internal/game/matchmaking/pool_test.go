package matchmaking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/linkarena/internal/model"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func request(owner string, team int, format string, players int, at time.Duration) *model.MatchRequest {
	return &model.MatchRequest{Owner: owner, TeamID: team, Format: format, Players: players, CreatedAt: t0.Add(at)}
}

func addAll(t *testing.T, p RequestPool, reqs ...*model.MatchRequest) []int64 {
	t.Helper()
	ids := make([]int64, len(reqs))
	for i, r := range reqs {
		id, err := p.Add(context.Background(), r)
		require.NoError(t, err)
		ids[i] = id
	}
	return ids
}

type recordingMatch struct {
	mu     sync.Mutex
	groups [][]int
	n      atomic.Int64
	fail   func(key model.BucketKey) error
}

func (m *recordingMatch) match(_ context.Context, key model.BucketKey, group []*model.MatchRequest) (string, error) {
	if m.fail != nil {
		if err := m.fail(key); err != nil {
			return "", err
		}
	}
	teams := make([]int, len(group))
	for i, r := range group {
		teams[i] = r.TeamID
	}
	m.mu.Lock()
	m.groups = append(m.groups, teams)
	m.mu.Unlock()
	return fmt.Sprintf("arena-%d", m.n.Add(1)), nil
}

func TestMemoryPool_Add(t *testing.T) {
	p := NewMemoryPool()
	ctx := context.Background()

	ids := addAll(t, p, request("p1", 1, "fe7", 2, 0), request("p2", 2, "fe7", 2, 0))
	assert.Equal(t, []int64{1, 2}, ids)

	_, err := p.Add(ctx, request("p1", 3, "fe7", 4, 0))
	assert.True(t, model.IsValidation(err))
	assert.ErrorContains(t, err, "p1 already has an open request")

	r, err := p.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.RequestPending, r.Status)
	assert.Equal(t, "p1", r.Owner)

	_, err = p.Get(ctx, 42)
	assert.ErrorIs(t, err, model.ErrRequestNotFound)
}

func TestMemoryPool_Drain(t *testing.T) {
	p := NewMemoryPool()
	ctx := context.Background()
	ids := addAll(t, p,
		request("p1", 1, "fe7", 2, 3*time.Second),
		request("p2", 2, "fe7", 2, 1*time.Second),
		request("p3", 3, "fe7", 3, 0),
		request("p4", 4, "fe7", 2, 2*time.Second),
		request("p5", 5, "fe8", 2, 0),
	)
	m := &recordingMatch{}

	n, err := p.Drain(ctx, m.match)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, [][]int{{2, 4}}, m.groups, "oldest requests of the bucket go first")

	for i, want := range []model.RequestStatus{model.RequestPending, model.RequestMatched, model.RequestPending, model.RequestMatched, model.RequestPending} {
		r, err := p.Get(ctx, ids[i])
		require.NoError(t, err)
		assert.Equal(t, want, r.Status, "request %d", ids[i])
	}
	r, err := p.Get(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, "arena-1", r.ArenaID)

	id, err := p.Add(ctx, request("p2", 2, "fe7", 2, 4*time.Second))
	require.NoError(t, err, "a matched owner may queue again")
	n, err = p.Drain(ctx, m.match)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []int{1, 2}, m.groups[1])
	r, err = p.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "arena-2", r.ArenaID)
}

func TestMemoryPool_DrainFailureKeepsRequests(t *testing.T) {
	p := NewMemoryPool()
	ctx := context.Background()
	ids := addAll(t, p,
		request("p1", 1, "fe7", 2, 0),
		request("p2", 2, "fe7", 2, 0),
		request("p3", 3, "fe8", 2, 0),
		request("p4", 4, "fe8", 2, 0),
	)
	m := &recordingMatch{fail: func(k model.BucketKey) error {
		if k.Format == "fe7" {
			return errors.New("catalog down")
		}
		return nil
	}}

	n, err := p.Drain(ctx, m.match)
	assert.ErrorContains(t, err, "catalog down")
	assert.Equal(t, 1, n, "other buckets still match")

	r, err := p.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, model.RequestPending, r.Status)
	r, err = p.Get(ctx, ids[2])
	require.NoError(t, err)
	assert.Equal(t, model.RequestMatched, r.Status)
}

func TestMemoryPool_DrainSkipsFailedGroup(t *testing.T) {
	p := NewMemoryPool()
	ctx := context.Background()
	ids := addAll(t, p,
		request("p1", 1, "fe7", 2, 0),
		request("p2", 2, "fe7", 2, 1*time.Second),
		request("p3", 3, "fe7", 2, 2*time.Second),
		request("p4", 4, "fe7", 2, 3*time.Second),
	)
	var calls atomic.Int64
	m := &recordingMatch{fail: func(model.BucketKey) error {
		if calls.Add(1) == 1 {
			return errors.New("arena refused")
		}
		return nil
	}}

	n, err := p.Drain(ctx, m.match)
	assert.ErrorContains(t, err, "arena refused")
	assert.Equal(t, 1, n, "the next group of the bucket still matches")
	assert.Equal(t, [][]int{{3, 4}}, m.groups)

	for i, want := range []model.RequestStatus{model.RequestPending, model.RequestPending, model.RequestMatched, model.RequestMatched} {
		r, err := p.Get(ctx, ids[i])
		require.NoError(t, err)
		assert.Equal(t, want, r.Status, "request %d", ids[i])
	}
}

func TestMemoryPool_ConcurrentDrainMatchesEachRequestOnce(t *testing.T) {
	const players = 40
	p := NewMemoryPool()
	ctx := context.Background()
	m := &recordingMatch{}

	var wg sync.WaitGroup
	for i := range players {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Add(ctx, request(fmt.Sprintf("p%d", i), i+1, "fe7", 2, time.Duration(i)))
			assert.NoError(t, err)
			_, err = p.Drain(ctx, m.match)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	_, err := p.Drain(ctx, m.match)
	require.NoError(t, err)

	seen := make(map[int]int)
	for _, g := range m.groups {
		assert.Len(t, g, 2)
		for _, team := range g {
			seen[team]++
		}
	}
	assert.Len(t, seen, players)
	for team, count := range seen {
		assert.Equal(t, 1, count, "team %d placed into more than one arena", team)
	}
}
