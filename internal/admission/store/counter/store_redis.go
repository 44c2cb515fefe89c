// Package counter provides CounterStore implementations. The Redis store is
// the production backend; the in-memory store backs unit tests and local
// runs without Redis.
package counter

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis-backed CounterStore. Counters are stored as plain
// integer strings under their scope key with a TTL; a malformed stored value
// is reported as an error so callers fail open.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore constructs a Redis-backed counter store.
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (int, bool, error) {
	raw, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, value int, ttl time.Duration) error {
	return s.client.Set(ctx, key, strconv.Itoa(value), ttl).Err()
}
