package cache

import (
	"github.com/segyhp/fintrack/internal/config"

	"github.com/redis/go-redis/v9"
)

// Open builds the backend selected by CACHE_DRIVER. The returned function
// releases the underlying client.
func Open(cfg *config.Config) (Backend, func() error) {
	if cfg.Cache.Driver == config.CacheDriverMemory {
		return NewMemoryBackend(cfg.Cache.Capacity, cfg.Cache.TTL), func() error { return nil }
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return NewRedisBackend(client, cfg.Redis.ScanCount), client.Close
}
