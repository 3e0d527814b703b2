package grammar

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache memoizes grammar-check results. ErrCacheMiss is the only expected
// lookup failure; anything else is a transport problem the caller may
// choose to ignore.
type Cache interface {
	Get(ctx context.Context, text string) (string, error)
	Set(ctx context.Context, text, result string) error
}

// ErrCacheMiss indicates no cached result exists for the text.
var ErrCacheMiss = errors.New("grammar cache miss")

// RedisCache implements Cache on Redis. The key is the SHA-256 of the exact
// input text - no normalization, so only byte-identical requests hit.
// Eviction is the TTL; the orchestrator never deletes entries itself.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisCache creates a Redis-backed grammar cache from a redis URL.
func NewRedisCache(redisURL string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisCache{
		client: client,
		ttl:    ttl,
		prefix: "grammar:",
	}, nil
}

// NewRedisCacheWithClient creates a cache from an existing Redis client.
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		prefix: "grammar:",
	}
}

func (c *RedisCache) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return c.prefix + hex.EncodeToString(sum[:])
}

// Get returns the cached result for the exact text, or ErrCacheMiss.
func (c *RedisCache) Get(ctx context.Context, text string) (string, error) {
	result, err := c.client.Get(ctx, c.key(text)).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("cache get: %w", err)
	}
	return result, nil
}

// Set stores the result for the exact text with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, text, result string) error {
	if err := c.client.Set(ctx, c.key(text), result, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
