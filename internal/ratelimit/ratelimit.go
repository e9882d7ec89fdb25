// Package ratelimit provides a keyed token bucket rate limiter.
// Each unique key (typically a client IP) gets its own independent limiter.
package ratelimit

import (
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/time/rate"
)

// KeyedRateLimiter manages per-key rate limiting.
type KeyedRateLimiter struct {
	limiters *xsync.MapOf[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

// New creates a new keyed rate limiter.
// rps is the sustained requests per second allowed per key; burst is the
// number of tokens available immediately.
func New(rps float64, burst int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters: xsync.NewMapOf[string, *rate.Limiter](),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

// Allow reports whether a request for the given key should be allowed.
// Returns immediately without blocking.
func (krl *KeyedRateLimiter) Allow(key string) bool {
	limiter, _ := krl.limiters.LoadOrCompute(key, func() *rate.Limiter {
		return rate.NewLimiter(krl.limit, krl.burst)
	})
	return limiter.Allow()
}

// Len returns the number of tracked keys.
func (krl *KeyedRateLimiter) Len() int {
	return krl.limiters.Size()
}
