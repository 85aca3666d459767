package cache

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultScanCount is the SCAN page size hint.
const DefaultScanCount int64 = 100

// RedisBackend stores entries in Redis. Each call borrows a pooled
// connection for a single command.
type RedisBackend struct {
	client    redis.UniversalClient
	scanCount int64
}

func NewRedisBackend(client redis.UniversalClient, scanCount int64) *RedisBackend {
	if scanCount <= 0 {
		scanCount = DefaultScanCount
	}
	return &RedisBackend{client: client, scanCount: scanCount}
}

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *RedisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return b.client.Set(ctx, key, value, ttl).Err()
}

// DeleteByPattern drains the SCAN cursor first and only then deletes, in
// batches of scanCount. Deleting between pages would shift an offset-based
// cursor and skip keys.
func (b *RedisBackend) DeleteByPattern(ctx context.Context, pattern string) (int64, error) {
	var (
		cursor uint64
		keys   []string
	)

	for {
		page, next, err := b.client.Scan(ctx, cursor, pattern, b.scanCount).Result()
		if err != nil {
			return 0, err
		}
		keys = append(keys, page...)

		cursor = next
		if cursor == 0 {
			break
		}
	}

	var deleted int64
	for chunk := range slices.Chunk(keys, int(b.scanCount)) {
		n, err := b.client.Del(ctx, chunk...).Result()
		if err != nil {
			return deleted, err
		}
		deleted += n
	}

	return deleted, nil
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
