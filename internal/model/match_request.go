package model

import "time"

// RequestStatus tracks a match request through the queue.
type RequestStatus string

const (
	RequestPending RequestStatus = "pending"
	RequestMatched RequestStatus = "matched"
)

// MatchRequest is a player's ask to be placed into an arena.
type MatchRequest struct {
	ID        int64         `json:"id"`
	Owner     string        `json:"owner"`
	TeamID    int           `json:"team_id"`
	Format    string        `json:"format"`
	Players   int           `json:"players"`
	Status    RequestStatus `json:"status"`
	ArenaID   string        `json:"arena_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// BucketKey groups requests that can be matched together.
type BucketKey struct {
	Format  string
	Players int
}

// Bucket returns the grouping key for r.
func (r *MatchRequest) Bucket() BucketKey {
	return BucketKey{Format: r.Format, Players: r.Players}
}
