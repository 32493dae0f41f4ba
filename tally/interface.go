package tally

import "context"

// Counter names tracked by a VoteStore.
const (
	CounterComments = "comments"
	CounterLikes    = "likes"
	CounterDislikes = "dislikes"
	CounterRemoved  = "removed"
)

// VoteStore defines the interface for board-wide vote tallies.
// This abstraction allows for mocking in tests and swapping storage implementations.
type VoteStore interface {
	Increment(ctx context.Context, counter string) error
	Counts(ctx context.Context) (map[string]int, error)
}
