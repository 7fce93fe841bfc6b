package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a RedisCache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every key, e.g. "gridtile:".
	Prefix string
}

// RedisCache stores entries in Redis so several server instances share
// tiled layouts and artifacts. Expiry is delegated to Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to the server in cfg and verifies it answers.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrNetwork, cfg.Addr, err)
	}
	return &RedisCache{client: client, prefix: cfg.Prefix}, nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Get retrieves a value. Connection failures are retried.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	hit := false
	err := RetryWithBackoff(ctx, func() error {
		b, err := c.client.Get(ctx, c.prefix+key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			return nil
		case err != nil:
			return Retryable(fmt.Errorf("%w: get: %v", ErrNetwork, err))
		}
		data, hit = b, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return data, hit, nil
}

// Set stores a value with an optional ttl.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return RetryWithBackoff(ctx, func() error {
		if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
			return Retryable(fmt.Errorf("%w: set: %v", ErrNetwork, err))
		}
		return nil
	})
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", ErrNetwork, err)
	}
	return nil
}

// Close closes the client connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
