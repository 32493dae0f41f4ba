package tally

import (
	"context"
	"strconv"

	"github.com/go-redis/redis/v8"

	"comment-board/logger"
)

const defaultKey = "board:tally"

// RedisVoteStore keeps every counter as a field of one Redis hash.
type RedisVoteStore struct {
	client *redis.Client
	key    string
}

// NewRedisVoteStore creates a new RedisVoteStore instance.
func NewRedisVoteStore(client *redis.Client) *RedisVoteStore {
	return &RedisVoteStore{client: client, key: defaultKey}
}

// Increment bumps a counter by one.
func (s *RedisVoteStore) Increment(ctx context.Context, counter string) error {
	return s.client.HIncrBy(ctx, s.key, counter, 1).Err()
}

// Counts returns all counters.
func (s *RedisVoteStore) Counts(ctx context.Context) (map[string]int, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(fields))
	for field, raw := range fields {
		val, err := strconv.Atoi(raw)
		if err != nil {
			logger.For(ctx).Warnf("Failed to parse tally field %s: %s", field, err)
			continue
		}
		counts[field] = val
	}
	return counts, nil
}
