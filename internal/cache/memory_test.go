package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend_GetSet(t *testing.T) {
	backend := NewMemoryBackend(1000, time.Minute)
	ctx := context.Background()

	_, err := backend.Get(ctx, "year_performance:2021")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, backend.Set(ctx, "year_performance:2021", []byte(`[]`), time.Minute))

	data, err := backend.Get(ctx, "year_performance:2021")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)
	assert.NoError(t, backend.Ping(ctx))
}

func TestMemoryBackend_DeleteByPattern(t *testing.T) {
	backend := NewMemoryBackend(1000, time.Minute)
	ctx := context.Background()

	for _, key := range []string{
		"year_performance:2021",
		"year_performance:2022",
		"plans_performance:2021-03-15",
		"plans_performance:2022-01-01",
		"user_credits:1",
	} {
		require.NoError(t, backend.Set(ctx, key, []byte(`[]`), time.Minute))
	}

	deleted, err := backend.DeleteByPattern(ctx, "year_performance:2021")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = backend.DeleteByPattern(ctx, "plans_performance:*")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	deleted, err = backend.DeleteByPattern(ctx, "plans_performance:*")
	require.NoError(t, err)
	assert.Zero(t, deleted)

	assert.Equal(t, 2, backend.Len())

	_, err = backend.DeleteByPattern(ctx, "[")
	assert.Error(t, err)
}
