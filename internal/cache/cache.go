// Package cache stores chat responses keyed by the exact user message.
// Redis is the primary backend; a process-local map is the fallback so
// the service keeps working when Redis is down or unconfigured.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultTTL is how long a cached response stays valid.
const DefaultTTL = time.Hour

// Stats describes the cache's current backend and size.
type Stats struct {
	RedisConnected bool  `json:"redis_connected"`
	Keys           int64 `json:"keys"`
}

// Cache is a response cache with Redis primary and in-memory fallback.
// All methods are safe for concurrent use. Redis errors degrade to the
// memory tier; they never surface to callers.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger

	mu  sync.Mutex
	mem map[string]memEntry
}

type memEntry struct {
	value     string
	expiresAt time.Time
}

// New creates a Cache. url is a redis:// URL; empty or unreachable
// Redis leaves the cache running on the memory tier alone.
func New(ctx context.Context, url string, ttl time.Duration, log *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{ttl: ttl, log: log, mem: make(map[string]memEntry)}

	if url == "" {
		return c
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("invalid redis url, using memory cache", zap.Error(err))
		return c
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable, using memory cache", zap.Error(err))
		rdb.Close()
		return c
	}
	c.rdb = rdb
	return c
}

func cacheKey(message string) string {
	sum := sha256.Sum256([]byte(message))
	return "chat:" + hex.EncodeToString(sum[:])
}

// Get returns the cached response for a message, if present and fresh.
func (c *Cache) Get(ctx context.Context, message string) (string, bool) {
	key := cacheKey(message)

	if c.rdb != nil {
		val, err := c.rdb.Get(ctx, key).Result()
		if err == nil {
			return val, true
		}
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("redis get failed", zap.Error(err))
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.mem[key]
	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.mem, key)
		return "", false
	}
	return e.value, true
}

// Set stores a response for a message with the cache TTL.
func (c *Cache) Set(ctx context.Context, message, response string) {
	key := cacheKey(message)

	if c.rdb != nil {
		err := c.rdb.Set(ctx, key, response, c.ttl).Err()
		if err == nil {
			return
		}
		c.log.Warn("redis set failed", zap.Error(err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.mem[key] = memEntry{value: response, expiresAt: time.Now().Add(c.ttl)}
}

// Clear drops all cached responses from both tiers.
func (c *Cache) Clear(ctx context.Context) {
	if c.rdb != nil {
		if err := c.rdb.FlushDB(ctx).Err(); err != nil {
			c.log.Warn("redis flush failed", zap.Error(err))
		}
	}
	c.mu.Lock()
	c.mem = make(map[string]memEntry)
	c.mu.Unlock()
}

// CurrentStats reports which tier is active and how many keys it holds.
func (c *Cache) CurrentStats(ctx context.Context) Stats {
	if c.rdb != nil {
		n, err := c.rdb.DBSize(ctx).Result()
		if err == nil {
			return Stats{RedisConnected: true, Keys: n}
		}
		c.log.Warn("redis dbsize failed", zap.Error(err))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{RedisConnected: false, Keys: int64(len(c.mem))}
}

// Close releases the Redis connection if one is held.
func (c *Cache) Close() error {
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}
