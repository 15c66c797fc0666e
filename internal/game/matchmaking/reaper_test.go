package matchmaking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/linkarena/internal/game/arena"
	"github.com/udisondev/linkarena/internal/model"
	"github.com/udisondev/linkarena/internal/testutil"
)

type recordingRemover struct {
	mu      sync.Mutex
	removed []string
	err     error
}

func (r *recordingRemover) Teardown(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, id)
	return r.err
}

func (r *recordingRemover) Removed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.removed...)
}

func TestReaper_Reap(t *testing.T) {
	rm := &recordingRemover{}
	r := NewReaper(rm, time.Hour)
	r.now = func() time.Time { return t0 }

	r.Schedule("old", t0.Add(-time.Minute))
	r.Schedule("old", t0)
	r.Schedule("later", t0.Add(time.Minute))
	assert.Equal(t, 2, r.Pending())

	assert.Equal(t, 1, r.Reap(context.Background()))
	assert.Equal(t, []string{"old"}, rm.Removed())
	assert.Zero(t, r.Reap(context.Background()))
	assert.Equal(t, 1, r.Pending())

	r.now = func() time.Time { return t0.Add(time.Hour) }
	assert.Equal(t, 1, r.Reap(context.Background()))
	assert.Equal(t, []string{"old", "later"}, rm.Removed())
	assert.Zero(t, r.Pending())
}

func TestReaper_FailedTeardownIsNotRetried(t *testing.T) {
	rm := &recordingRemover{err: errors.New("journal offline")}
	r := NewReaper(rm, time.Hour)
	r.Schedule("a", time.Now().Add(-time.Second))

	assert.Equal(t, 1, r.Reap(context.Background()))
	assert.Zero(t, r.Pending())
}

func TestReaper_TearsDownFinishedArena(t *testing.T) {
	lyn := testutil.Unit(1, "Lyn", model.StatBlock{HP: 20})
	guy := testutil.Unit(2, "Guy", model.StatBlock{HP: 21})
	a := testutil.Arena(testutil.GBAGame(), testutil.Team(1, "p1", lyn), testutil.Team(2, "p2", guy))
	store := arena.NewStore()
	require.NoError(t, store.Put(a))
	svc := arena.NewService(nil, store)

	r := NewReaper(svc, 5*time.Millisecond)
	svc.SetScheduler(r)
	r.Schedule(a.ID, time.Now())
	r.Schedule(a.ID, time.Now())
	r.Start(context.Background())
	defer r.Stop()

	require.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, svc.Teardown(context.Background(), a.ID), "tearing down twice is harmless")
	_, err := svc.Arena(context.Background(), a.ID)
	assert.ErrorIs(t, err, model.ErrArenaNotFound)
}
