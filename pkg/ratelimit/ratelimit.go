// Package ratelimit provides best-effort request throttling keyed by an
// arbitrary string (client IP, account id). It is abuse protection, not
// a security boundary.
package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Config defines the limiting parameters shared by all implementations.
type Config struct {
	// Requests allowed per Window.
	Requests int
	// Window is the time window the budget applies to.
	Window time.Duration
	// Burst allows short spikes above the steady rate (memory limiter only).
	Burst int
}
