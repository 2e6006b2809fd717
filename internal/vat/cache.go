package vat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheVersionKey = "vat:version"

// Cache memoizes period summaries in Redis. It is a performance optimisation
// only; a nil client degrades to computing through the loader every time.
// Versioned keys make invalidation a single INCR.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache wraps the Redis client with the summary cache helpers.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// SummaryKey composes the cache key for a period at the current version.
func (c *Cache) SummaryKey(ctx context.Context, period string) (string, error) {
	if c == nil || c.client == nil {
		return "vat:summary:" + period, nil
	}
	ver, err := c.version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("vat:summary:%s:%d", period, ver), nil
}

// FetchSummary loads a cached summary or computes and stores it via loader.
func (c *Cache) FetchSummary(ctx context.Context, key string, loader func(context.Context) (VatPeriodSummary, error)) (VatPeriodSummary, error) {
	if loader == nil {
		return VatPeriodSummary{}, errors.New("vat: cache loader required")
	}
	if c == nil || c.client == nil {
		return loader(ctx)
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var cached VatPeriodSummary
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
		// Unreadable entry: fall through and overwrite it.
	} else if !errors.Is(err, redis.Nil) {
		return VatPeriodSummary{}, fmt.Errorf("vat: cache get: %w", err)
	}
	summary, err := loader(ctx)
	if err != nil {
		return VatPeriodSummary{}, err
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return VatPeriodSummary{}, err
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return VatPeriodSummary{}, fmt.Errorf("vat: cache set: %w", err)
	}
	return summary, nil
}

// Bump invalidates every cached summary by incrementing the version.
func (c *Cache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, cacheVersionKey).Err()
}

func (c *Cache) version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
		if err := c.client.Set(ctx, cacheVersionKey, strconv.FormatInt(ver, 10), 0).Err(); err != nil {
			return 0, err
		}
	}
	return ver, nil
}
