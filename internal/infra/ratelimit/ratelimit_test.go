package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_FixedWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewMemory(0, func() time.Time { return now })
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		d, err := limiter.Allow(ctx, "10.0.0.1", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, 1-i, d.Remaining)
	}
	d, err := limiter.Allow(ctx, "10.0.0.1", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, now.Add(time.Minute), d.ResetAt)

	d, err = limiter.Allow(ctx, "10.0.0.2", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	now = now.Add(61 * time.Second)
	d, err = limiter.Allow(ctx, "10.0.0.1", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)
}

func TestMemory_Disabled(t *testing.T) {
	limiter := NewMemory(1, nil)
	for i := 0; i < 5; i++ {
		d, err := limiter.Allow(context.Background(), "k", 0, time.Minute)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}
}

func TestMemory_Capacity(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewMemory(1, func() time.Time { return now })
	ctx := context.Background()

	_, err := limiter.Allow(ctx, "a", 5, time.Minute)
	require.NoError(t, err)
	_, err = limiter.Allow(ctx, "b", 5, time.Minute)
	require.ErrorIs(t, err, ErrCapacityExceeded)

	now = now.Add(2 * time.Minute)
	d, err := limiter.Allow(ctx, "b", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestDecide(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	d := decide(3, 4, now, 1500)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Equal(t, now.Add(1500*time.Millisecond), d.ResetAt)

	d = decide(3, 1, now, -1)
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining)
	assert.Equal(t, now, d.ResetAt)
}

func TestParseWindowReply(t *testing.T) {
	current, ttl, err := parseWindowReply([]any{int64(2), int64(900)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), current)
	assert.Equal(t, int64(900), ttl)

	_, _, err = parseWindowReply("nope")
	require.Error(t, err)
	_, _, err = parseWindowReply([]any{"x", int64(1)})
	require.Error(t, err)
}

func TestNewRedis_RequiresAddr(t *testing.T) {
	_, err := NewRedis("", "", 0, nil)
	require.Error(t, err)
}
