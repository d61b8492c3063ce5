package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bimta/bimta-api/pkg/config"
)

// NewRedis returns a connected Redis client, or nil when Redis is disabled.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// Counter tracks expiring integer counters in Redis.
type Counter struct {
	client *redis.Client
	prefix string
}

// NewCounter scopes counters under the given key prefix.
func NewCounter(client *redis.Client, prefix string) *Counter {
	return &Counter{client: client, prefix: prefix}
}

// Get returns the current value, zero when the key is absent.
func (c *Counter) Get(ctx context.Context, key string) (int64, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get counter: %w", err)
	}
	return val, nil
}

// Incr increments the counter and starts its expiry window on first use.
func (c *Counter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := c.prefix + key
	n, err := c.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return 0, fmt.Errorf("incr counter: %w", err)
	}
	if n == 1 {
		if err := c.client.Expire(ctx, fullKey, window).Err(); err != nil {
			_ = c.client.Del(ctx, fullKey).Err()
			return 0, fmt.Errorf("expire counter: %w", err)
		}
	}
	return n, nil
}

// Reset removes the counter.
func (c *Counter) Reset(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("reset counter: %w", err)
	}
	return nil
}
