package local

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRoundTrip(t *testing.T) {
	c := NewCache(0)
	defer c.Close()
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Del(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTTLExpiry(t *testing.T) {
	c := NewCache(0)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 10*time.Millisecond))
	time.Sleep(25 * time.Millisecond)
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLeaderboard(t *testing.T) {
	c := NewCache(0)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.ZIncrBy(ctx, "wins", 3, "Rowan"))
	require.NoError(t, c.ZIncrBy(ctx, "wins", 1, "Maya"))
	require.NoError(t, c.ZIncrBy(ctx, "wins", 2, "Maya"))

	rows, err := c.ZRevRange(ctx, "wins", 0, -1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Maya", rows[0].Member, "3 wins sorts first alphabetically on tie")
	assert.Equal(t, 3.0, rows[0].Score)

	s, err := c.ZScore(ctx, "wins", "Rowan")
	require.NoError(t, err)
	assert.Equal(t, 3.0, s)

	_, err = c.ZScore(ctx, "wins", "Nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}
