package tally

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseVoteStore(t *testing.T, s VoteStore) {
	t.Helper()
	ctx := context.Background()

	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Empty(t, counts)

	require.NoError(t, s.Increment(ctx, CounterComments))
	require.NoError(t, s.Increment(ctx, CounterLikes))
	require.NoError(t, s.Increment(ctx, CounterLikes))
	require.NoError(t, s.Increment(ctx, CounterDislikes))

	counts, err = s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		CounterComments: 1,
		CounterLikes:    2,
		CounterDislikes: 1,
	}, counts)
}

func TestMemoryVoteStore(t *testing.T) {
	exerciseVoteStore(t, NewMemoryVoteStore())
}

func TestMemoryVoteStore_CountsIsCopy(t *testing.T) {
	s := NewMemoryVoteStore()
	require.NoError(t, s.Increment(context.Background(), CounterRemoved))

	counts, err := s.Counts(context.Background())
	require.NoError(t, err)
	counts[CounterRemoved] = 99

	counts, err = s.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, counts[CounterRemoved])
}

func TestRedisVoteStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	exerciseVoteStore(t, NewRedisVoteStore(client))
	assert.Equal(t, "2", mr.HGet(defaultKey, CounterLikes))
}

func TestRedisVoteStore_SkipsGarbage(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.HSet(defaultKey, CounterLikes, "3")
	mr.HSet(defaultKey, "junk", "not-a-number")
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	counts, err := NewRedisVoteStore(client).Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{CounterLikes: 3}, counts)
}

func TestRedisVoteStore_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	s := NewRedisVoteStore(client)
	assert.Error(t, s.Increment(context.Background(), CounterLikes))
	_, err := s.Counts(context.Background())
	assert.Error(t, err)
}
