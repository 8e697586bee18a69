package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, ttl)
}

func TestFetchJSONPopulatesOnce(t *testing.T) {
	cache := newTestCache(t, time.Minute)

	calls := 0
	loader := func(ctx context.Context) (interface{}, error) {
		calls++
		return []TrendPoint{{Date: "2026-08-30", SalesTotal: 1000, ExpenseTotal: 200}}, nil
	}

	var first, second []TrendPoint
	require.NoError(t, cache.FetchJSON(context.Background(), "reports:test", &first, loader))
	require.NoError(t, cache.FetchJSON(context.Background(), "reports:test", &second, loader))

	require.Equal(t, 1, calls, "second fetch is served from the cache")
	require.Equal(t, first, second)
}

func TestFetchJSONWithoutClientCallsLoader(t *testing.T) {
	var cache *Cache

	var out DashboardStats
	err := cache.FetchJSON(context.Background(), "unused", &out, func(ctx context.Context) (interface{}, error) {
		return &DashboardStats{SalesTotal: 5000}, nil
	})
	require.NoError(t, err)
	require.Equal(t, 5000.0, out.SalesTotal)
}

func TestInvalidateDropsKey(t *testing.T) {
	cache := newTestCache(t, time.Minute)

	calls := 0
	loader := func(ctx context.Context) (interface{}, error) {
		calls++
		return map[string]float64{"Gas": 8000}, nil
	}

	var out map[string]float64
	require.NoError(t, cache.FetchJSON(context.Background(), "reports:inv", &out, loader))
	require.NoError(t, cache.Invalidate(context.Background(), "reports:inv"))
	require.NoError(t, cache.FetchJSON(context.Background(), "reports:inv", &out, loader))
	require.Equal(t, 2, calls)
}
