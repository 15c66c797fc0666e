// Package matchmaking queues match requests, groups them into arenas on a
// timer and tears finished arenas down after a delay.
package matchmaking

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/udisondev/linkarena/internal/model"
)

// MatchFunc starts an arena for a full group of requests sharing key and
// returns the arena id.
type MatchFunc func(ctx context.Context, key model.BucketKey, group []*model.MatchRequest) (string, error)

// RequestPool stores match requests.
//
// Drain must be atomic: it reads the pending requests, groups them by
// bucket, calls match for every full group and marks the group matched
// without any other Drain or Add observing the intermediate state.
type RequestPool interface {
	Add(ctx context.Context, r *model.MatchRequest) (int64, error)
	Get(ctx context.Context, id int64) (*model.MatchRequest, error)
	Drain(ctx context.Context, match MatchFunc) (int, error)
}

// MemoryPool is a RequestPool kept in process memory.
type MemoryPool struct {
	mu       sync.Mutex
	requests map[int64]*model.MatchRequest
	lastID   int64
}

var _ RequestPool = (*MemoryPool)(nil)

// NewMemoryPool creates an empty pool.
func NewMemoryPool() *MemoryPool {
	return &MemoryPool{requests: make(map[int64]*model.MatchRequest)}
}

// Add stores r as pending and returns its id. An owner may have only one
// pending request.
func (p *MemoryPool) Add(_ context.Context, r *model.MatchRequest) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, o := range p.requests {
		if o.Owner == r.Owner && o.Status == model.RequestPending {
			return 0, model.InvalidOpf("match request", "%s already has an open request", r.Owner)
		}
	}
	p.lastID++
	c := *r
	c.ID = p.lastID
	c.Status = model.RequestPending
	p.requests[c.ID] = &c
	return c.ID, nil
}

// Get returns a copy of the request with id.
func (p *MemoryPool) Get(_ context.Context, id int64) (*model.MatchRequest, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	r, ok := p.requests[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", model.ErrRequestNotFound, id)
	}
	c := *r
	return &c, nil
}

// Drain matches every full group of pending requests. Requests of a group
// whose arena fails to start stay pending for the next drain.
func (p *MemoryPool) Drain(ctx context.Context, match MatchFunc) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var pending []*model.MatchRequest
	for _, r := range p.requests {
		if r.Status == model.RequestPending {
			pending = append(pending, r)
		}
	}
	return DrainGroups(ctx, pending, match, func(r *model.MatchRequest, arenaID string) error {
		r.Status = model.RequestMatched
		r.ArenaID = arenaID
		return nil
	})
}

// DrainGroups buckets pending in submission order and hands every full
// group to match, calling mark for each request of a started arena. A group
// whose match fails stays pending and the bucket moves on to its next group.
func DrainGroups(ctx context.Context, pending []*model.MatchRequest, match MatchFunc, mark func(*model.MatchRequest, string) error) (int, error) {
	slices.SortFunc(pending, func(a, b *model.MatchRequest) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	buckets := make(map[model.BucketKey][]*model.MatchRequest)
	var keys []model.BucketKey
	for _, r := range pending {
		k := r.Bucket()
		if _, ok := buckets[k]; !ok {
			keys = append(keys, k)
		}
		buckets[k] = append(buckets[k], r)
	}

	var (
		matched int
		errs    []error
	)
	for _, k := range keys {
		queue := buckets[k]
		for k.Players > 0 && len(queue) >= k.Players {
			if err := ctx.Err(); err != nil {
				return matched, errors.Join(append(errs, err)...)
			}
			group := queue[:k.Players]
			queue = queue[k.Players:]

			id, err := match(ctx, k, group)
			if err != nil {
				errs = append(errs, fmt.Errorf("match %s for %d players: %w", k.Format, k.Players, err))
				continue
			}
			for _, r := range group {
				if err := mark(r, id); err != nil {
					return matched, errors.Join(append(errs, err)...)
				}
			}
			matched++
		}
	}
	return matched, errors.Join(errs...)
}
