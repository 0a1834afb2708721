// Package cache provides the lookaside store for fare lookups. The
// store is optional: when Redis is unreachable the service runs with a
// no-op store and every lookup is a miss.
package cache

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a TTL'd key-value capability. Get reports a miss with
// false; Set reports whether the value was stored. Neither returns an
// error: an absent or failing backend degrades to misses.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool
	Close() error
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
	}
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	return s.client.Set(ctx, key, value, ttl).Err() == nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// NoOpStore satisfies Store when caching is disabled or unavailable.
type NoOpStore struct{}

func NewNoOpStore() *NoOpStore {
	return &NoOpStore{}
}

func (s *NoOpStore) Get(ctx context.Context, key string) ([]byte, bool) {
	return nil, false
}

func (s *NoOpStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	return false
}

func (s *NoOpStore) Close() error {
	return nil
}

// Key builds a deterministic cache key from a provider prefix and
// sorted parameter names, e.g.
// "amadeus:date:2025-01-01:from:ICN:to:KIX".
func Key(prefix string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(params)+1)
	parts = append(parts, prefix)
	for _, name := range names {
		parts = append(parts, name+":"+params[name])
	}
	return strings.Join(parts, ":")
}
