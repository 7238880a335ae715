package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"

	"payhold/internal/model"
)

// Cache fast-paths retried settlement requests. It sits above the durable
// fences in the ledger, so eviction or total loss only downgrades a replay
// to the authoritative path.
type Cache interface {
	Get(ctx context.Context, key string) (Entry, bool)
	Put(ctx context.Context, key string, e Entry)
}

// Entry is the compact cached outcome of a settled request.
type Entry struct {
	Status        model.SettleStatus `json:"status"`
	Message       string             `json:"message"`
	ReservationID string             `json:"reservation_id"`
}

const (
	// DefaultCacheSize bounds the in-process cache; oldest and
	// least-recently-used entries go first under pressure.
	DefaultCacheSize = 100_000
	// DefaultCacheTTL ages entries out regardless of pressure.
	DefaultCacheTTL = 10 * time.Minute
)

// MemoryCache is a bounded, expiring LRU local to one orchestrator process.
type MemoryCache struct {
	lru *expirable.LRU[string, Entry]
}

func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &MemoryCache{lru: expirable.NewLRU[string, Entry](size, nil, ttl)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (Entry, bool) {
	return c.lru.Get(key)
}

func (c *MemoryCache) Put(_ context.Context, key string, e Entry) {
	c.lru.Add(key, e)
}

// RedisCache shares the fast path across orchestrator replicas. Errors are
// swallowed into misses: Redis being down must never fail a settlement.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) key(key string) string { return "idem:" + key }

func (c *RedisCache) Get(ctx context.Context, key string) (Entry, bool) {
	raw, err := c.rdb.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) || err != nil {
		return Entry{}, false
	}
	var e Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return Entry{}, false
	}
	return e, true
}

func (c *RedisCache) Put(ctx context.Context, key string, e Entry) {
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, c.key(key), data, c.ttl).Err()
}
