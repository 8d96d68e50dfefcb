package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLimiter connects to REDIS_TEST_ADDR and skips when it is unset.
func newTestLimiter(t *testing.T, maxAttempts int, window time.Duration) *LoginLimiter {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client, err := Connect(context.Background(), Config{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginLimiter(client, maxAttempts, window)
}

func TestLoginLimiter_Key(t *testing.T) {
	l := NewLoginLimiter(nil, 5, time.Minute)
	assert.Equal(t, "login:fail:a@example.com", l.key("a@example.com"))
}

func TestLoginLimiter_BlocksAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	l := newTestLimiter(t, 3, time.Minute)
	key := uuid.NewString() + "@example.com"
	t.Cleanup(func() { _ = l.Reset(ctx, key) })

	for i := 0; i < 3; i++ {
		blocked, err := l.Blocked(ctx, key)
		require.NoError(t, err)
		assert.False(t, blocked, "attempt %d", i+1)
		require.NoError(t, l.Fail(ctx, key))
	}

	blocked, err := l.Blocked(ctx, key)
	require.NoError(t, err)
	assert.True(t, blocked)

	require.NoError(t, l.Reset(ctx, key))
	blocked, err = l.Blocked(ctx, key)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestLoginLimiter_WindowExpires(t *testing.T) {
	ctx := context.Background()
	l := newTestLimiter(t, 1, time.Second)
	key := uuid.NewString() + "@example.com"

	require.NoError(t, l.Fail(ctx, key))
	blocked, err := l.Blocked(ctx, key)
	require.NoError(t, err)
	require.True(t, blocked)

	time.Sleep(1500 * time.Millisecond)
	blocked, err = l.Blocked(ctx, key)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestLoginLimiter_FailAlwaysLeavesTTL(t *testing.T) {
	ctx := context.Background()
	l := newTestLimiter(t, 5, time.Minute)
	key := uuid.NewString() + "@example.com"
	t.Cleanup(func() { _ = l.Reset(ctx, key) })

	require.NoError(t, l.Fail(ctx, key))
	ttl, err := l.client.TTL(ctx, l.key(key)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestLoginLimiter_FailRepairsCounterWithoutTTL(t *testing.T) {
	ctx := context.Background()
	l := newTestLimiter(t, 5, time.Minute)
	key := uuid.NewString() + "@example.com"
	t.Cleanup(func() { _ = l.Reset(ctx, key) })

	// A counter left behind with no expiry, as after a crash between writes.
	require.NoError(t, l.client.Set(ctx, l.key(key), 3, 0).Err())

	require.NoError(t, l.Fail(ctx, key))
	ttl, err := l.client.TTL(ctx, l.key(key)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	n, err := l.client.Get(ctx, l.key(key)).Int64()
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
}
