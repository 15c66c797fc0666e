package matchmaking

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/udisondev/linkarena/internal/model"
)

// DefaultInterval is how often the worker scans the pool.
const DefaultInterval = 10 * time.Second

// Starter starts an arena from catalog teams.
type Starter interface {
	StartArena(ctx context.Context, format string, teamIDs []int) (string, error)
}

// Worker periodically drains the request pool into new arenas.
// Must call Start() to begin scanning.
type Worker struct {
	pool     RequestPool
	starter  Starter
	interval time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewWorker creates a worker scanning pool every interval.
func NewWorker(pool RequestPool, starter Starter, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Worker{
		pool:     pool,
		starter:  starter,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the scan goroutine. It runs until Stop is called or ctx
// is done.
func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.run(ctx)
}

// Stop terminates the scan goroutine and waits for it to exit.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Tick(ctx)
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Tick runs one scan and returns the number of arenas started. Failures
// are logged; a panic inside the scan is recovered so the loop survives.
func (w *Worker) Tick(ctx context.Context) (n int) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("matchmaking tick panicked", "panic", r)
		}
	}()

	n, err := w.pool.Drain(ctx, w.match)
	if err != nil {
		slog.Error("matchmaking tick failed", "matched", n, "error", err)
	}
	if n > 0 {
		slog.Info("arenas matched", "count", n)
	}
	return n
}

func (w *Worker) match(ctx context.Context, key model.BucketKey, group []*model.MatchRequest) (string, error) {
	teams := make([]int, len(group))
	for i, r := range group {
		teams[i] = r.TeamID
	}
	id, err := w.starter.StartArena(ctx, key.Format, teams)
	if err != nil {
		return "", fmt.Errorf("start arena: %w", err)
	}
	return id, nil
}
