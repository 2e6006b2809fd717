package vat

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func testCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestCacheFetchSummaryStoresAndReuses(t *testing.T) {
	ctx := context.Background()
	cache := testCache(t)

	key, err := cache.SummaryKey(ctx, "Q1-2025")
	require.NoError(t, err)

	loads := 0
	loader := func(context.Context) (VatPeriodSummary, error) {
		loads++
		return VatPeriodSummary{Period: "Q1-2025", OutputVat: 42}, nil
	}

	first, err := cache.FetchSummary(ctx, key, loader)
	require.NoError(t, err)
	require.Equal(t, 42.0, first.OutputVat)

	second, err := cache.FetchSummary(ctx, key, loader)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, loads)
}

func TestCacheBumpChangesKey(t *testing.T) {
	ctx := context.Background()
	cache := testCache(t)

	before, err := cache.SummaryKey(ctx, "Q1-2025")
	require.NoError(t, err)
	require.NoError(t, cache.Bump(ctx))
	after, err := cache.SummaryKey(ctx, "Q1-2025")
	require.NoError(t, err)
	require.NotEqual(t, before, after)
}

func TestCacheNilClientDegradesToLoader(t *testing.T) {
	ctx := context.Background()
	var cache *Cache

	key, err := cache.SummaryKey(ctx, "Q1-2025")
	require.NoError(t, err)

	loads := 0
	got, err := cache.FetchSummary(ctx, key, func(context.Context) (VatPeriodSummary, error) {
		loads++
		return VatPeriodSummary{Period: "Q1-2025"}, nil
	})
	require.NoError(t, err)
	require.Equal(t, "Q1-2025", got.Period)
	require.Equal(t, 1, loads)
	require.NoError(t, cache.Bump(ctx))
}
