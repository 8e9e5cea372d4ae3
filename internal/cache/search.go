// Package cache provides an optional Redis-backed cache for Open
// Library search responses.
package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const opTimeout = 3 * time.Second

// SearchCache keeps serialized search responses in Redis with a TTL.
// All failures degrade to cache misses so the upstream call still runs.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSearchCache builds a Redis-backed search cache.
func NewSearchCache(addr, password string, ttl time.Duration) *SearchCache {
	return &SearchCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl: ttl,
	}
}

// Key builds the cache key for a search query page.
func Key(query string, page, pageSize int) string {
	return fmt.Sprintf("search:%s:%d:%d", query, page, pageSize)
}

// Get returns the cached payload for a key, if present.
func (c *SearchCache) Get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("search cache get failed: %v", err)
		return nil, false
	}
	return payload, true
}

// Set stores a payload under the key with the configured TTL.
func (c *SearchCache) Set(ctx context.Context, key string, payload []byte) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Printf("search cache set failed: %v", err)
	}
}

// Close releases the underlying Redis connection.
func (c *SearchCache) Close() error {
	return c.client.Close()
}
