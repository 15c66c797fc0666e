package arena

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/udisondev/linkarena/internal/game/actionlog"
	"github.com/udisondev/linkarena/internal/game/combat"
	"github.com/udisondev/linkarena/internal/game/skill"
	"github.com/udisondev/linkarena/internal/model"
)

// DefaultTeardownDelay is how long a finished arena stays queryable.
const DefaultTeardownDelay = 15 * time.Minute

// Catalog resolves what arenas are started from.
type Catalog interface {
	skill.Catalog
	Format(name string) (*model.GameFormat, bool)
	Team(id int) (*model.BuiltTeam, bool)
}

// Journal persists arena state and the log of every processed phase.
type Journal interface {
	SaveArena(ctx context.Context, a *model.Arena) error
	AppendLog(ctx context.Context, arenaID string, turn, phase int, l actionlog.Log) error
	DeleteArena(ctx context.Context, id string) error
}

// Scheduler tears arenas down at a later time.
type Scheduler interface {
	Schedule(id string, at time.Time)
}

// Option configures a Service.
type Option func(*Service)

// WithScripts sets the engine for scripted skill effects.
func WithScripts(sc skill.Scripts) Option {
	return func(s *Service) { s.scripts = sc }
}

// WithJournal persists every arena change through j.
func WithJournal(j Journal) Option {
	return func(s *Service) { s.journal = j }
}

// WithRNG sets the factory for per-arena random sources.
func WithRNG(newRNG func() combat.RNG) Option {
	return func(s *Service) { s.newRNG = newRNG }
}

// WithTeardownDelay sets how long finished arenas are kept.
func WithTeardownDelay(d time.Duration) Option {
	return func(s *Service) { s.teardownDelay = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service owns the live arenas of the process.
type Service struct {
	catalog       Catalog
	scripts       skill.Scripts
	store         *Store
	journal       Journal
	scheduler     Scheduler
	newRNG        func() combat.RNG
	teardownDelay time.Duration
	now           func() time.Time

	mu   sync.Mutex
	rngs map[string]combat.RNG
}

// NewService creates a service keeping arenas in store.
func NewService(cat Catalog, store *Store, opts ...Option) *Service {
	s := &Service{
		catalog:       cat,
		store:         store,
		newRNG:        func() combat.RNG { return combat.NewRNG(0) },
		teardownDelay: DefaultTeardownDelay,
		now:           time.Now,
		rngs:          make(map[string]combat.RNG),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetScheduler installs the scheduler finished arenas are handed to.
func (s *Service) SetScheduler(sc Scheduler) {
	s.scheduler = sc
}

func (s *Service) rng(id string) combat.RNG {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rngs[id]
	if !ok {
		r = s.newRNG()
		s.rngs[id] = r
	}
	return r
}

// StartArena deploys the catalog teams teamIDs into a new arena playing
// the named format and returns its id.
func (s *Service) StartArena(ctx context.Context, format string, teamIDs []int) (string, error) {
	f, ok := s.catalog.Format(format)
	if !ok {
		return "", model.InvalidOpf("start arena", "unknown format %q", format)
	}
	teams := make([]*model.BuiltTeam, 0, len(teamIDs))
	for _, id := range teamIDs {
		t, ok := s.catalog.Team(id)
		if !ok {
			return "", model.InvalidOpf("start arena", "team %d does not exist", id)
		}
		teams = append(teams, t)
	}

	rng := s.newRNG()
	a, err := Start(f, teams, rng, s.catalog, s.scripts)
	if err != nil {
		return "", err
	}
	if err := s.store.Put(a); err != nil {
		return "", err
	}
	s.mu.Lock()
	s.rngs[a.ID] = rng
	s.mu.Unlock()

	if s.journal != nil {
		if err := s.journal.SaveArena(ctx, a); err != nil {
			s.store.Delete(a.ID)
			return "", fmt.Errorf("save arena %s: %w", a.ID, err)
		}
	}
	return a.ID, nil
}

// ProcessPhase applies p, submitted by owner, to the arena. Either every
// change of the phase is kept or none is.
func (s *Service) ProcessPhase(ctx context.Context, arenaID, owner string, p Phase) (actionlog.Log, error) {
	var log actionlog.Log
	err := s.store.With(ctx, arenaID, func(a *model.Arena) error {
		turn, phase := a.Turn, a.Phase
		out, err := NewBattle(a, s.rng(arenaID), s.catalog, s.scripts).ProcessPhase(owner, p)
		if err != nil {
			return err
		}
		actionlog.Warn(ctx, arenaID, out)

		if a.GameOver {
			a.FinishedAt = s.now()
		}
		if s.journal != nil {
			if err := s.journal.AppendLog(ctx, arenaID, turn, phase, out); err != nil {
				return fmt.Errorf("journal arena %s: %w", arenaID, err)
			}
			if err := s.journal.SaveArena(ctx, a); err != nil {
				return fmt.Errorf("save arena %s: %w", arenaID, err)
			}
		}
		if a.GameOver && s.scheduler != nil {
			s.scheduler.Schedule(arenaID, a.FinishedAt.Add(s.teardownDelay))
		}
		log = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("phase processed", "arena", arenaID, "owner", owner, "unit", p.Unit, "records", len(log))
	return log, nil
}

// Arena returns a snapshot of a live arena.
func (s *Service) Arena(_ context.Context, id string) (*model.Arena, error) {
	return s.store.Get(id)
}

// Teardown removes an arena. Tearing down an arena that is already gone
// does nothing.
func (s *Service) Teardown(ctx context.Context, id string) error {
	removed := s.store.Delete(id)
	s.mu.Lock()
	delete(s.rngs, id)
	s.mu.Unlock()
	if !removed {
		return nil
	}
	if s.journal != nil {
		if err := s.journal.DeleteArena(ctx, id); err != nil {
			return fmt.Errorf("delete arena %s: %w", id, err)
		}
	}
	slog.Info("arena torn down", "arena", id)
	return nil
}
