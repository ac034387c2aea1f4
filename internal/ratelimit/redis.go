package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/azniosman/Project-Fortress/pkg/redis"
)

// RedisStore keeps counters in Redis so limits hold across instances. Window
// membership is encoded in the key, so INCR is the whole atomic operation.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	k, resetAt := s.windowKey(key, window)
	count, err := s.client.IncrWithTTL(ctx, k, window)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("increment counter: %w", err)
	}
	return count, resetAt, nil
}

func (s *RedisStore) Count(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	k, resetAt := s.windowKey(key, window)
	count, err := s.client.GetInt64(ctx, k)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("read counter: %w", err)
	}
	return count, resetAt, nil
}

func (s *RedisStore) windowKey(key string, window time.Duration) (string, time.Time) {
	idx := time.Now().UnixNano() / window.Nanoseconds()
	resetAt := time.Unix(0, (idx+1)*window.Nanoseconds())
	return fmt.Sprintf("ratelimit:%s:%d", key, idx), resetAt
}
