package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// RedisSessionCache stores token -> last-seen (unix nanoseconds) in Redis.
// Keys carry no TTL: session expiry is not enforced.
type RedisSessionCache struct {
	client *redisv9.Client
	prefix string
}

func NewRedisSessionCache(client *redisv9.Client, prefix string) *RedisSessionCache {
	if prefix == "" {
		prefix = "docrag:session:"
	}
	return &RedisSessionCache{client: client, prefix: prefix}
}

func (c *RedisSessionCache) Put(ctx context.Context, token string, seen time.Time) error {
	if err := c.client.Set(ctx, c.key(token), seen.UnixNano(), 0).Err(); err != nil {
		return fmt.Errorf("redis set session failed: %w", err)
	}
	return nil
}

// Touch refreshes last-seen only when the token is already present.
func (c *RedisSessionCache) Touch(ctx context.Context, token string, seen time.Time) (bool, error) {
	ok, err := c.client.SetXX(ctx, c.key(token), seen.UnixNano(), 0).Result()
	if err != nil {
		return false, fmt.Errorf("redis refresh session failed: %w", err)
	}
	return ok, nil
}

func (c *RedisSessionCache) Get(ctx context.Context, token string) (time.Time, bool, error) {
	raw, err := c.client.Get(ctx, c.key(token)).Int64()
	if errors.Is(err, redisv9.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("redis get session failed: %w", err)
	}
	return time.Unix(0, raw), true, nil
}

func (c *RedisSessionCache) Delete(ctx context.Context, token string) error {
	if err := c.client.Del(ctx, c.key(token)).Err(); err != nil {
		return fmt.Errorf("redis delete session failed: %w", err)
	}
	return nil
}

func (c *RedisSessionCache) key(token string) string {
	return c.prefix + token
}
