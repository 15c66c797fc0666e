package arena

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/linkarena/internal/game/actionlog"
	"github.com/udisondev/linkarena/internal/game/combat"
	"github.com/udisondev/linkarena/internal/model"
	"github.com/udisondev/linkarena/internal/testutil"
)

type stubCatalog struct {
	formats map[string]*model.GameFormat
	teams   map[int]*model.BuiltTeam
}

func (c *stubCatalog) WeaponTemplate(int) (*model.WeaponTemplate, bool) { return nil, false }
func (c *stubCatalog) SkillByName(string) (*model.Skill, bool)         { return nil, false }

func (c *stubCatalog) Format(name string) (*model.GameFormat, bool) {
	f, ok := c.formats[name]
	return f, ok
}

func (c *stubCatalog) Team(id int) (*model.BuiltTeam, bool) {
	t, ok := c.teams[id]
	return t, ok
}

type journalEntry struct {
	arena       string
	turn, phase int
	actions     []string
}

type stubJournal struct {
	mu        sync.Mutex
	saved     map[string]int
	entries   []journalEntry
	deleted   []string
	appendErr error
}

func newStubJournal() *stubJournal {
	return &stubJournal{saved: make(map[string]int)}
}

func (j *stubJournal) SaveArena(_ context.Context, a *model.Arena) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.saved[a.ID]++
	return nil
}

func (j *stubJournal) AppendLog(_ context.Context, id string, turn, phase int, l actionlog.Log) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.appendErr != nil {
		return j.appendErr
	}
	j.entries = append(j.entries, journalEntry{arena: id, turn: turn, phase: phase, actions: l.Actions()})
	return nil
}

func (j *stubJournal) DeleteArena(_ context.Context, id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.deleted = append(j.deleted, id)
	return nil
}

type stubScheduler struct {
	at map[string]time.Time
}

func (s *stubScheduler) Schedule(id string, at time.Time) { s.at[id] = at }

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, j Journal) (*Service, *stubScheduler) {
	t.Helper()
	lyn := builtUnit(t, 1, "Lyn", model.StatBlock{HP: 20, Str: 10, Skl: 10, Spd: 10, Luk: 6, Def: 3, Res: 7, Con: 5})
	lyn.Weapons = []*model.WeaponTemplate{ironSword(1)}
	guy := builtUnit(t, 2, "Guy", model.StatBlock{HP: 21, Str: 6, Skl: 8, Spd: 5, Luk: 2, Def: 3, Con: 5})
	guy.Weapons = []*model.WeaponTemplate{ironSword(1)}

	cat := &stubCatalog{
		formats: map[string]*model.GameFormat{"fe7-open": testFormat()},
		teams: map[int]*model.BuiltTeam{
			1: builtTeam(1, "p1", lyn),
			2: builtTeam(2, "p2", guy),
		},
	}
	opts := []Option{
		WithRNG(func() combat.RNG { return &combat.ScriptedRNG{Default: 99} }),
		WithClock(func() time.Time { return testNow }),
		WithTeardownDelay(time.Minute),
	}
	if j != nil {
		opts = append(opts, WithJournal(j))
	}
	svc := NewService(cat, NewStore(), opts...)
	sched := &stubScheduler{at: make(map[string]time.Time)}
	svc.SetScheduler(sched)
	return svc, sched
}

func TestService_FullBattle(t *testing.T) {
	j := newStubJournal()
	svc, sched := newTestService(t, j)
	ctx := context.Background()

	id, err := svc.StartArena(ctx, "fe7-open", []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("_", IDLength), id)
	assert.Equal(t, 1, j.saved[id])

	// team 1, Lyn 2 with sword 3, team 4, Guy 5 with sword 6
	log, err := svc.ProcessPhase(ctx, id, "p1", Phase{Unit: 2, Actions: []Action{
		{Kind: model.ActionAttack, Target: 5, WithWeapon: 3, Range: 1},
	}})
	require.NoError(t, err)
	assert.Equal(t, "victory", log[len(log)-1].Action())

	require.Len(t, j.entries, 1)
	assert.Equal(t, journalEntry{arena: id, turn: 1, phase: 0, actions: log.Actions()}, j.entries[0])
	assert.Equal(t, 2, j.saved[id])
	assert.Equal(t, testNow.Add(time.Minute), sched.at[id])

	a, err := svc.Arena(ctx, id)
	require.NoError(t, err)
	assert.True(t, a.GameOver)
	assert.Equal(t, testNow, a.FinishedAt)

	_, err = svc.ProcessPhase(ctx, id, "p2", Phase{Unit: 5, Actions: []Action{{Kind: model.ActionWait}}})
	assert.True(t, model.IsValidation(err))

	require.NoError(t, svc.Teardown(ctx, id))
	require.NoError(t, svc.Teardown(ctx, id))
	assert.Equal(t, []string{id}, j.deleted)
	_, err = svc.Arena(ctx, id)
	assert.ErrorIs(t, err, model.ErrArenaNotFound)
}

func TestService_FailedPhaseLeavesArenaUntouched(t *testing.T) {
	j := newStubJournal()
	svc, _ := newTestService(t, j)
	ctx := context.Background()
	id, err := svc.StartArena(ctx, "fe7-open", []int{1, 2})
	require.NoError(t, err)

	_, err = svc.ProcessPhase(ctx, id, "p1", Phase{Unit: 2, Actions: []Action{
		{Kind: model.ActionDiscardWeapon, Weapon: 3},
		{Kind: model.ActionAttack, Target: 5, WithWeapon: 3, Range: 1},
	}})
	require.Error(t, err)

	a, err := svc.Arena(ctx, id)
	require.NoError(t, err)
	assert.Len(t, a.Unit(2).Weapons, 1)

	j.appendErr = testutil.ErrSimulated
	_, err = svc.ProcessPhase(ctx, id, "p1", Phase{Unit: 2, Actions: []Action{{Kind: model.ActionWait}}})
	assert.ErrorIs(t, err, testutil.ErrSimulated)

	a, err = svc.Arena(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Phase)
	assert.Empty(t, j.entries)
}

func TestService_StartRejected(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.StartArena(ctx, "fe9-open", []int{1, 2})
	assert.ErrorContains(t, err, `unknown format "fe9-open"`)
	_, err = svc.StartArena(ctx, "fe7-open", []int{1, 3})
	assert.ErrorContains(t, err, "team 3 does not exist")
	_, err = svc.StartArena(ctx, "fe7-open", []int{1})
	assert.True(t, model.IsValidation(err))
}

func TestService_NotYourTurn(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	id, err := svc.StartArena(ctx, "fe7-open", []int{1, 2})
	require.NoError(t, err)

	_, err = svc.ProcessPhase(ctx, id, "p2", Phase{Unit: 5, Actions: []Action{{Kind: model.ActionWait}}})
	assert.ErrorIs(t, err, model.ErrNotYourTurn)
	_, err = svc.ProcessPhase(ctx, "missing", "p1", Phase{Unit: 2, Actions: []Action{{Kind: model.ActionWait}}})
	assert.ErrorIs(t, err, model.ErrArenaNotFound)
}
