package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *RedisBackend) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	return server, NewRedisBackend(client, 10)
}

func TestRedisBackend_GetSet(t *testing.T) {
	server, backend := setupRedis(t)
	ctx := context.Background()

	_, err := backend.Get(ctx, "user_credits:1")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, backend.Set(ctx, "user_credits:1", []byte(`[{"credit_id":1}]`), time.Hour))

	data, err := backend.Get(ctx, "user_credits:1")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"credit_id":1}]`, string(data))
	assert.Equal(t, time.Hour, server.TTL("user_credits:1"))

	server.FastForward(time.Hour + time.Second)
	_, err = backend.Get(ctx, "user_credits:1")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisBackend_DeleteByPatternDrainsCursor(t *testing.T) {
	server, backend := setupRedis(t)
	ctx := context.Background()

	// More keys than one SCAN page so the cursor has to be followed.
	for day := 1; day <= 28; day++ {
		require.NoError(t, server.Set(fmt.Sprintf("plans_performance:2021-02-%02d", day), "[]"))
	}
	require.NoError(t, server.Set("year_performance:2021", "[]"))

	deleted, err := backend.DeleteByPattern(ctx, "plans_performance:*")
	require.NoError(t, err)
	assert.Equal(t, int64(28), deleted)
	assert.Equal(t, []string{"year_performance:2021"}, server.Keys())

	deleted, err = backend.DeleteByPattern(ctx, "plans_performance:*")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestRedisBackend_DeleteByPatternInterleavedKeys(t *testing.T) {
	server, backend := setupRedis(t)
	ctx := context.Background()

	for i := 1; i <= 45; i++ {
		require.NoError(t, server.Set(fmt.Sprintf("user_credits:%d", i), "[]"))
		require.NoError(t, server.Set(fmt.Sprintf("year_performance:%d", 1980+i), "[]"))
	}

	deleted, err := backend.DeleteByPattern(ctx, "user_credits:*")
	require.NoError(t, err)
	assert.Equal(t, int64(45), deleted)
	assert.Len(t, server.Keys(), 45)
	for _, key := range server.Keys() {
		assert.Contains(t, key, "year_performance:")
	}
}

func TestRedisBackend_Unavailable(t *testing.T) {
	server, backend := setupRedis(t)
	server.Close()
	ctx := context.Background()

	_, err := backend.Get(ctx, "user_credits:1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
	assert.Error(t, backend.Ping(ctx))
}
