package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	customError "github.com/segyhp/fintrack/pkg/errors"

	"github.com/sirupsen/logrus"
)

// DefaultTTL is the expiry used when none is configured.
const DefaultTTL = time.Hour

// ErrMiss is returned by a Backend when the key is absent.
var ErrMiss = errors.New("cache: miss")

// Backend is a raw key-value cache service.
type Backend interface {
	// Get returns the stored bytes or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value with expiry ttl. Backends built with a fixed expiry,
	// such as MemoryBackend, apply their own and ignore ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// DeleteByPattern removes every key matching a glob pattern and returns
	// how many were removed. Matching nothing is not an error.
	DeleteByPattern(ctx context.Context, pattern string) (int64, error)

	// Ping checks connectivity.
	Ping(ctx context.Context) error
}

// Store is the cache-aside view used by the reports. It never returns backend
// failures: reads degrade to a miss, writes and invalidations to a no-op. The
// failure is logged instead.
type Store struct {
	backend Backend
	ttl     time.Duration
	log     logrus.FieldLogger
}

// NewStore wraps backend. A non-positive ttl means DefaultTTL.
func NewStore(backend Backend, ttl time.Duration, log logrus.FieldLogger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		backend: backend,
		ttl:     ttl,
		log:     log.WithField("component", "cache"),
	}
}

// Get decodes the cached JSON value of key into dest and reports whether it
// was a hit. Backend errors and undecodable entries count as a miss.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	data, err := s.backend.Get(ctx, key)
	if errors.Is(err, ErrMiss) {
		s.log.WithField("key", key).Debug("cache miss")
		return false
	}
	if err != nil {
		s.log.WithField("key", key).WithError(customError.WrapCacheError(err)).Warn("cache read failed, treating as miss")
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.log.WithField("key", key).WithError(err).Warn("discarding undecodable cache entry")
		return false
	}

	s.log.WithField("key", key).Debug("cache hit")
	return true
}

// Set stores value under key with the store's TTL.
func (s *Store) Set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.WithField("key", key).WithError(err).Error("cannot encode cache value")
		return
	}

	if err := s.backend.Set(ctx, key, data, s.ttl); err != nil {
		s.log.WithField("key", key).WithError(customError.WrapCacheError(err)).Warn("cache write failed")
		return
	}

	s.log.WithFields(logrus.Fields{"key": key, "ttl": s.ttl.String()}).Debug("cache set")
}

// DeleteByPattern drops every entry matching pattern.
func (s *Store) DeleteByPattern(ctx context.Context, pattern string) {
	deleted, err := s.backend.DeleteByPattern(ctx, pattern)
	if err != nil {
		s.log.WithField("pattern", pattern).WithError(customError.WrapCacheError(err)).Warn("cache invalidation failed")
		return
	}

	s.log.WithFields(logrus.Fields{"pattern": pattern, "deleted": deleted}).Info("cache invalidated")
}

// Ping reports backend connectivity. Unlike the other methods it returns the
// error, for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}
