package cache

import (
	"context"
	"path"
	"time"

	"github.com/viccon/sturdyc"
)

// MemoryBackend keeps entries in process with sturdyc. Expiry is the TTL the
// backend was built with; the per-call ttl of Set is ignored.
type MemoryBackend struct {
	client *sturdyc.Client[[]byte]
}

const (
	maxShards          = 256
	entriesPerShard    = 64
	evictionPercentage = 10
)

func NewMemoryBackend(capacity int, ttl time.Duration) *MemoryBackend {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	shards := min(max(capacity/entriesPerShard, 1), maxShards)

	return &MemoryBackend{
		client: sturdyc.New[[]byte](capacity, shards, ttl, evictionPercentage),
	}
}

func (b *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := b.client.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	return value, nil
}

func (b *MemoryBackend) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	b.client.Set(key, value)
	return nil
}

// DeleteByPattern matches keys with Redis-style globs (*, ?, [...]).
func (b *MemoryBackend) DeleteByPattern(_ context.Context, pattern string) (int64, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return 0, err
	}

	var deleted int64
	for _, key := range b.client.ScanKeys() {
		if ok, _ := path.Match(pattern, key); ok {
			b.client.Delete(key)
			deleted++
		}
	}
	return deleted, nil
}

func (b *MemoryBackend) Ping(context.Context) error {
	return nil
}

// Len returns the number of live entries.
func (b *MemoryBackend) Len() int {
	return len(b.client.ScanKeys())
}
