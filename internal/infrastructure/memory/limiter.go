// Package memory holds in-process fallbacks for stores that are optional in
// single-instance deployments.
package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// LoginLimiter is the in-process counterpart of the Redis limiter, used when
// no Redis address is configured. Counts are lost on restart and are not
// shared between instances.
type LoginLimiter struct {
	counts      *cache.Cache
	maxAttempts int64
	window      time.Duration
}

func NewLoginLimiter(maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		counts:      cache.New(window, 2*window),
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

func (l *LoginLimiter) Blocked(_ context.Context, key string) (bool, error) {
	v, ok := l.counts.Get(key)
	if !ok {
		return false, nil
	}
	n, _ := v.(int64)
	return n >= l.maxAttempts, nil
}

func (l *LoginLimiter) Fail(_ context.Context, key string) error {
	if err := l.counts.Add(key, int64(1), l.window); err == nil {
		return nil
	}
	if _, err := l.counts.IncrementInt64(key, 1); err != nil {
		// expired between Add and Increment
		l.counts.Set(key, int64(1), l.window)
	}
	return nil
}

func (l *LoginLimiter) Reset(_ context.Context, key string) error {
	l.counts.Delete(key)
	return nil
}

// Ping always succeeds.
func (l *LoginLimiter) Ping(context.Context) error {
	return nil
}
