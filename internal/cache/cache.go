// Package cache wraps Redis as a namespaced key/value memoization layer.
// Every operation is best-effort: failures are logged and swallowed so a
// broken or absent cache never turns into a request failure.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a thin cache-aside helper over a Redis connection.  A nil
// underlying client disables all operations, which lets the application
// run without Redis entirely.
type Client struct {
	rdb    *redis.Client
	prefix string
}

// New builds a Client.  rdb may be nil.
func New(rdb *redis.Client, prefix string) *Client {
	if prefix == "" {
		prefix = "app"
	}
	return &Client{rdb: rdb, prefix: prefix}
}

func (c *Client) key(k string) string { return c.prefix + ":" + k }

// Get loads a JSON-encoded value into dest and reports whether the key
// was found.  Misses and errors both report false.
func (c *Client) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache: get %s failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("cache: decode %s failed: %v", key, err)
		return false
	}
	return true
}

// Set stores a JSON-encoded value with the given TTL.
func (c *Client) Set(ctx context.Context, key string, val any, ttl time.Duration) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		log.Printf("cache: encode %s failed: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, c.key(key), raw, ttl).Err(); err != nil {
		log.Printf("cache: set %s failed: %v", key, err)
	}
}

// Delete removes specific keys.
func (c *Client) Delete(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	if err := c.rdb.Del(ctx, full...).Err(); err != nil {
		log.Printf("cache: delete failed: %v", err)
	}
}

// DeletePrefix removes every key under the given prefix using SCAN so
// large keyspaces are not blocked by a KEYS call.
func (c *Client) DeletePrefix(ctx context.Context, prefix string) {
	if c == nil || c.rdb == nil {
		return
	}
	pattern := c.key(prefix) + "*"
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			log.Printf("cache: scan %s failed: %v", pattern, err)
			return
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				log.Printf("cache: delete %s failed: %v", pattern, err)
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
