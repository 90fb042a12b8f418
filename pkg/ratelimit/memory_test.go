package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_EnforcesBudgetPerKey(t *testing.T) {
	limiter := NewMemoryLimiter(Config{Requests: 3, Window: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, allowed, "request %d should fit the budget", i+1)
	}

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.False(t, allowed)

	// A different key has its own bucket.
	allowed, err = limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestMemoryLimiter_RefillsOverTime(t *testing.T) {
	// 100 per second so the refill is observable without a long sleep.
	limiter := NewMemoryLimiter(Config{Requests: 100, Window: time.Second, Burst: 1})
	ctx := context.Background()

	allowed, _ := limiter.Allow(ctx, "key")
	require.True(t, allowed)
	allowed, _ = limiter.Allow(ctx, "key")
	require.False(t, allowed)

	time.Sleep(30 * time.Millisecond)

	allowed, _ = limiter.Allow(ctx, "key")
	require.True(t, allowed)
}

func TestMemoryLimiter_BurstDefaultsToRequests(t *testing.T) {
	limiter := NewMemoryLimiter(Config{Requests: 5, Window: time.Minute})
	require.Equal(t, 5, limiter.burst)

	limiter = NewMemoryLimiter(Config{Requests: 5, Window: time.Minute, Burst: 2})
	require.Equal(t, 2, limiter.burst)
}
