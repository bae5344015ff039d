package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcadavid/maternal_mortality_dashboard/internal/models"
)

const viewCacheKeyPrefix = "dashboard:view:"

// ViewCache stores rendered dashboard views in Redis, keyed by the
// (year, region) selection. Refreshes are pure functions over static data,
// so a cached view is always valid until its TTL expires.
type ViewCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// NewViewCache creates a ViewCache with the given TTL.
func NewViewCache(client *redis.Client, ttl time.Duration) *ViewCache {
	return &ViewCache{
		redisClient: client,
		ttl:         ttl,
	}
}

// Key builds the deterministic cache key for a selection.
func (c *ViewCache) Key(year int, region string) string {
	return fmt.Sprintf("%s%d:%s", viewCacheKeyPrefix, year, region)
}

// Get returns the cached view for a selection, or (nil, nil) on a miss.
func (c *ViewCache) Get(ctx context.Context, year int, region string) (*models.DashboardView, error) {
	data, err := c.redisClient.Get(ctx, c.Key(year, region)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: get cached view: %w", err)
	}

	var view models.DashboardView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("repository: decode cached view: %w", err)
	}
	return &view, nil
}

// Set stores a rendered view for a selection.
func (c *ViewCache) Set(ctx context.Context, year int, region string, view *models.DashboardView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("repository: encode view for cache: %w", err)
	}

	if err := c.redisClient.Set(ctx, c.Key(year, region), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("repository: set cached view: %w", err)
	}
	return nil
}
