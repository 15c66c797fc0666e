package matchmaking

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultReapInterval is how often the reaper looks for due arenas.
const DefaultReapInterval = time.Second

// Remover tears an arena down. Removing a missing arena must succeed.
type Remover interface {
	Teardown(ctx context.Context, id string) error
}

// Reaper tears finished arenas down once their time comes.
// Must call Start() to begin reaping.
type Reaper struct {
	remover  Remover
	interval time.Duration
	now      func() time.Time

	mu  sync.Mutex
	due map[string]time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewReaper creates a reaper checking every interval.
func NewReaper(remover Remover, interval time.Duration) *Reaper {
	if interval <= 0 {
		interval = DefaultReapInterval
	}
	return &Reaper{
		remover:  remover,
		interval: interval,
		now:      time.Now,
		due:      make(map[string]time.Time),
		stopCh:   make(chan struct{}),
	}
}

// Schedule arranges for arena id to be torn down at at. Scheduling an
// arena again moves its deadline.
func (r *Reaper) Schedule(id string, at time.Time) {
	r.mu.Lock()
	r.due[id] = at
	r.mu.Unlock()
	slog.Debug("arena teardown scheduled", "arena", id, "at", at)
}

// Pending returns the number of scheduled teardowns.
func (r *Reaper) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.due)
}

// Start launches the reaping goroutine.
func (r *Reaper) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.run(ctx)
}

// Stop terminates the reaping goroutine and waits for it to exit.
func (r *Reaper) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	r.wg.Wait()
}

func (r *Reaper) run(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Reap(ctx)
		case <-r.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Reap tears down every arena whose deadline passed and returns how many
// were handed to the remover.
func (r *Reaper) Reap(ctx context.Context) int {
	now := r.now()
	var ids []string
	r.mu.Lock()
	for id, at := range r.due {
		if !at.After(now) {
			ids = append(ids, id)
			delete(r.due, id)
		}
	}
	r.mu.Unlock()

	for _, id := range ids {
		if err := r.remover.Teardown(ctx, id); err != nil {
			slog.Error("arena teardown failed", "arena", id, "error", err)
		}
	}
	return len(ids)
}
