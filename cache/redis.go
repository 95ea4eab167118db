package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a small JSON cache over Redis. A nil *Cache is valid and
// disables caching, so callers never have to branch on availability.
type Cache struct {
	client *redis.Client
}

// Connect dials Redis at addr. Returns nil (caching disabled) when addr
// is empty or the server is unreachable.
func Connect(addr string) *Cache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Printf("redis unavailable, caching disabled: %v", err)
		return nil
	}
	log.Println("Redis connected:", addr)
	return &Cache{client: client}
}

// Get unmarshals the cached value for key into dest, reporting whether a
// value was present.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Set stores a JSON-encoded value under key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, raw, ttl)
}

// Delete drops keys, used to invalidate after writes.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil {
		return
	}
	c.client.Del(ctx, keys...)
}
