package auth

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter provides rate limiting functionality
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

var (
	_ RateLimiter = (*KeyedLimiter)(nil)
	_ RateLimiter = (*UserRateLimiter)(nil)
)

// KeyedLimiter keeps one token bucket per key
type KeyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*entry
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewKeyedLimiter creates a limiter allowing requestsPerMinute per key with
// a burst of the same size. Buckets idle for longer than ten minutes are
// dropped on the next sweep.
func NewKeyedLimiter(requestsPerMinute int) *KeyedLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 1
	}
	return &KeyedLimiter{
		limiters: make(map[string]*entry),
		limit:    rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    requestsPerMinute,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}
}

// Allow checks if a request is allowed
func (l *KeyedLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.limiters[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now

	return e.limiter.AllowN(now, 1), nil
}

// Reset drops the bucket for a key
func (l *KeyedLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.limiters, key)
	return nil
}

// Sweep removes buckets that have been idle longer than the TTL.
// Lambda containers are short lived, so callers sweep opportunistically.
func (l *KeyedLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.idleTTL)
	removed := 0
	for key, e := range l.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(l.limiters, key)
			removed++
		}
	}
	return removed
}

// UserRateLimiter limits requests per authenticated user
type UserRateLimiter struct {
	*KeyedLimiter
	requestsPerMinute int
}

// NewUserRateLimiter creates a per-user rate limiter
func NewUserRateLimiter(requestsPerMinute int) *UserRateLimiter {
	return &UserRateLimiter{
		KeyedLimiter:      NewKeyedLimiter(requestsPerMinute),
		requestsPerMinute: requestsPerMinute,
	}
}

// Allow checks if the user may make another request
func (l *UserRateLimiter) Allow(ctx context.Context, userID string) (bool, error) {
	return l.KeyedLimiter.Allow(ctx, "user:"+userID)
}

// Reset drops the bucket for a user
func (l *UserRateLimiter) Reset(ctx context.Context, userID string) error {
	return l.KeyedLimiter.Reset(ctx, "user:"+userID)
}

// Limit returns the configured requests per minute
func (l *UserRateLimiter) Limit() int {
	return l.requestsPerMinute
}
