package arena

import (
	"context"
	"fmt"
	"sync"

	"github.com/udisondev/linkarena/internal/model"
)

// Store keeps live arenas in memory.
// Thread-safe; work on one arena is serialized, different arenas proceed in parallel.
type Store struct {
	mu     sync.Mutex
	arenas map[string]*slot
}

type slot struct {
	mu    sync.Mutex
	arena *model.Arena
	gone  bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{arenas: make(map[string]*slot, 16)}
}

// Put adds a new arena.
func (s *Store) Put(a *model.Arena) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.arenas[a.ID]; ok {
		return fmt.Errorf("arena %s already exists", a.ID)
	}
	s.arenas[a.ID] = &slot{arena: a}
	return nil
}

func (s *Store) slot(id string) (*slot, error) {
	s.mu.Lock()
	sl, ok := s.arenas[id]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrArenaNotFound, id)
	}
	return sl, nil
}

// With runs fn on a copy of the arena while holding its lock. The copy
// replaces the stored arena only when fn succeeds, so a failed phase
// leaves no trace.
func (s *Store) With(ctx context.Context, id string, fn func(a *model.Arena) error) error {
	sl, err := s.slot(id)
	if err != nil {
		return err
	}
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.gone {
		return fmt.Errorf("%w: %s", model.ErrArenaNotFound, id)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	work := Clone(sl.arena)
	if err := fn(work); err != nil {
		return err
	}
	sl.arena = work
	return nil
}

// Get returns a copy of the arena.
func (s *Store) Get(id string) (*model.Arena, error) {
	sl, err := s.slot(id)
	if err != nil {
		return nil, err
	}
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.gone {
		return nil, fmt.Errorf("%w: %s", model.ErrArenaNotFound, id)
	}
	return Clone(sl.arena), nil
}

// Delete removes the arena and reports whether it was present. Deleting
// an unknown arena is a no-op.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	sl, ok := s.arenas[id]
	delete(s.arenas, id)
	s.mu.Unlock()
	if !ok {
		return false
	}
	sl.mu.Lock()
	sl.gone = true
	sl.mu.Unlock()
	return true
}

// Len returns the number of live arenas.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.arenas)
}
