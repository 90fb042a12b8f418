package ratelimit

import (
	"context"
	"fmt"

	"ecohub.backend/pkg/redis"
)

// RedisLimiter counts requests per key in a fixed window stored in Redis,
// so the budget is shared across instances.
type RedisLimiter struct {
	cfg    Config
	prefix string
}

// NewRedisLimiter creates a Redis-backed limiter. The prefix namespaces
// the counter keys (e.g. "ratelimit:login").
func NewRedisLimiter(cfg Config, prefix string) *RedisLimiter {
	return &RedisLimiter{cfg: cfg, prefix: prefix}
}

// Allow increments the window counter for key and reports whether the
// budget is exhausted.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	counterKey := fmt.Sprintf("%s:%s", l.prefix, key)

	count, err := redis.Incr(ctx, counterKey)
	if err != nil {
		return false, err
	}

	// First hit in the window starts the clock.
	if count == 1 {
		if err := redis.Expire(ctx, counterKey, l.cfg.Window); err != nil {
			return false, err
		}
	}

	return count <= int64(l.cfg.Requests), nil
}
