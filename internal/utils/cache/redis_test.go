package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *RedisClient) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := NewRedis(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisClient_SetGet(t *testing.T) {
	mr, client := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Ping(ctx))
	require.NoError(t, client.Set(ctx, "k", "v", time.Minute))

	v, err := client.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	mr.FastForward(2 * time.Minute)
	_, err = client.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisClient_Del(t *testing.T) {
	_, client := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "a", "1", 0))
	require.NoError(t, client.Del(ctx, "a"))

	_, err := client.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisClient_PingFailsWhenDown(t *testing.T) {
	mr, client := setupRedis(t)
	mr.Close()

	assert.Error(t, client.Ping(context.Background()))
}
