package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wocademy/utility-backend/internal/core/domain"
	portsrepo "github.com/wocademy/utility-backend/internal/core/ports/repositories"
)

const (
	timezoneCacheKey = "utility:timezones:all"

	// Backstop TTL so a lost invalidation cannot serve stale rows forever.
	timezoneCacheTTL = 24 * time.Hour
)

// RedisTimezoneCache stores the full timezone list under a single key.
type RedisTimezoneCache struct {
	client *redis.Client
}

// NewRedisTimezoneCache creates a Redis-backed timezone cache.
func NewRedisTimezoneCache(client *redis.Client) portsrepo.TimezoneCache {
	return &RedisTimezoneCache{client: client}
}

var _ portsrepo.TimezoneCache = (*RedisTimezoneCache)(nil)

// GetTimezones returns the cached list, or (nil, nil) on a miss.
func (c *RedisTimezoneCache) GetTimezones(ctx context.Context) ([]domain.Timezone, error) {
	data, err := c.client.Get(ctx, timezoneCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read timezone cache: %w", err)
	}

	var tzs []domain.Timezone
	if err := json.Unmarshal(data, &tzs); err != nil {
		// A corrupt entry is treated as a miss; the next write repairs it.
		return nil, nil
	}
	return tzs, nil
}

// SetTimezones replaces the cached list.
func (c *RedisTimezoneCache) SetTimezones(ctx context.Context, tzs []domain.Timezone) error {
	data, err := json.Marshal(tzs)
	if err != nil {
		return fmt.Errorf("failed to marshal timezones for cache: %w", err)
	}
	if err := c.client.Set(ctx, timezoneCacheKey, data, timezoneCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to write timezone cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached list.
func (c *RedisTimezoneCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, timezoneCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate timezone cache: %w", err)
	}
	return nil
}
