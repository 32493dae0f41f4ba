package tally

import (
	"context"
	"maps"
	"sync"
)

// MemoryVoteStore keeps counters in process memory.
type MemoryVoteStore struct {
	mu     sync.RWMutex
	counts map[string]int
}

func NewMemoryVoteStore() *MemoryVoteStore {
	return &MemoryVoteStore{counts: make(map[string]int)}
}

func (s *MemoryVoteStore) Increment(_ context.Context, counter string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[counter]++
	return nil
}

func (s *MemoryVoteStore) Counts(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.counts), nil
}
