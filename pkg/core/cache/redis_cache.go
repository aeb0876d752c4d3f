package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Quotes are pure recomputations of their inputs, so entries can expire
// without any invalidation protocol.
const quoteTTL = 24 * time.Hour

// RedisCache backs the quote cache with a shared Redis instance so multiple
// API replicas memoize into the same store.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr string) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		// Treat every failure (miss, timeout, connection loss) as a miss;
		// the caller recomputes either way
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, key, value, quoteTTL).Err()
}
