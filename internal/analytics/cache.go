package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const statsCacheKey = "portfolio:admin:stats"

type statsBackend interface {
	Stats(ctx context.Context) (*Stats, error)
	Cleanup(ctx context.Context, olderThan time.Duration) (int64, error)
}

// StatsCache keeps the dashboard summary in Redis for ttl. With a nil client
// every call goes straight to the backend.
type StatsCache struct {
	base  statsBackend
	redis *redis.Client
	ttl   time.Duration
}

// NewStatsCache wraps base with a Redis-backed cache.
func NewStatsCache(base statsBackend, client *redis.Client, ttl time.Duration) *StatsCache {
	if base == nil {
		panic("analytics.NewStatsCache: base is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &StatsCache{base: base, redis: client, ttl: ttl}
}

func (c *StatsCache) Stats(ctx context.Context) (*Stats, error) {
	if stats, ok := c.load(ctx); ok {
		return stats, nil
	}
	stats, err := c.base.Stats(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, stats)
	return stats, nil
}

// Cleanup deletes old visitor rows and drops the cached summary.
func (c *StatsCache) Cleanup(ctx context.Context, olderThan time.Duration) (int64, error) {
	n, err := c.base.Cleanup(ctx, olderThan)
	if err != nil {
		return 0, err
	}
	c.Evict(ctx)
	return n, nil
}

// Evict drops the cached summary.
func (c *StatsCache) Evict(ctx context.Context) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Del(ctx, statsCacheKey).Err()
}

func (c *StatsCache) load(ctx context.Context) (*Stats, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			_ = c.redis.Del(ctx, statsCacheKey).Err()
		}
		return nil, false
	}
	var stats Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		_ = c.redis.Del(ctx, statsCacheKey).Err()
		return nil, false
	}
	return &stats, true
}

func (c *StatsCache) store(ctx context.Context, stats *Stats) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, statsCacheKey, data, c.ttl).Err()
}
