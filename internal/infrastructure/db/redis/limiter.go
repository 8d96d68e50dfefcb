package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts failed logins in Redis. Each key gets a fixed window
// that starts at its first failure.
// Key format: login:fail:<key>
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// failScript increments the counter and sets its expiry in one step. A counter
// found without a TTL gets one too, so a key can never outlive its window.
var failScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 or redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Blocked reports whether key has reached the failure limit.
func (l *LoginLimiter) Blocked(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("limiter get: %w", err)
	}
	return n >= l.maxAttempts, nil
}

// Fail records one failed attempt, starting the window on the first one.
func (l *LoginLimiter) Fail(ctx context.Context, key string) error {
	err := failScript.Run(ctx, l.client, []string{l.key(key)}, l.window.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("limiter fail: %w", err)
	}
	return nil
}

// Reset clears the failure count after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.key(key)).Err()
}

// Ping checks that the backing store is reachable.
func (l *LoginLimiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *LoginLimiter) key(key string) string {
	return "login:fail:" + key
}
