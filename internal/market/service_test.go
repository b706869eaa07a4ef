package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memCache is an in-memory Cache for tests.
type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	return c.data[key], nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func newStubService(cache Cache) *Service {
	return NewService(cache, Config{}, zap.NewNop())
}

func TestStubTrendsOversuppliedModel(t *testing.T) {
	trends, err := newStubService(nil).Trends(context.Background(), "Ram", "Ram 2500")

	require.NoError(t, err)
	assert.Equal(t, 318, trends.DaysSupply)
	assert.Equal(t, 4.18, trends.SupplyRatio)
	assert.Equal(t, "oversupplied", trends.SupplyLevel)
	assert.Equal(t, "declining", trends.PriceTrend)
	assert.Equal(t, "high", trends.InventoryLevel)
	assert.Equal(t, 3, trends.ActiveIncentiveCount)
	assert.Equal(t, 6000.0, trends.TotalIncentiveValue)
	assert.Equal(t, "stub", trends.Source)
}

func TestStubTrendsUndersuppliedModel(t *testing.T) {
	trends, err := newStubService(nil).Trends(context.Background(), "Toyota", "Tacoma")

	require.NoError(t, err)
	assert.Equal(t, 30, trends.DaysSupply)
	assert.Equal(t, "undersupplied", trends.SupplyLevel)
	assert.Equal(t, "rising", trends.PriceTrend)
	assert.Equal(t, "low", trends.InventoryLevel)
	assert.Zero(t, trends.ActiveIncentiveCount)
}

func TestStubTrendsUnknownModelBalanced(t *testing.T) {
	trends, err := newStubService(nil).Trends(context.Background(), "Honda", "Civic")

	require.NoError(t, err)
	assert.Equal(t, 76, trends.DaysSupply)
	assert.Equal(t, 1.0, trends.SupplyRatio)
	assert.Equal(t, "balanced", trends.SupplyLevel)
	assert.Equal(t, "stable", trends.PriceTrend)
	assert.Equal(t, "moderate", trends.InventoryLevel)
}

func TestStubStatsKnownModel(t *testing.T) {
	stats, err := newStubService(nil).Stats(context.Background(), "Ram", "Ram 2500")

	require.NoError(t, err)
	assert.Equal(t, 60000.0, stats.AvgPrice)
	assert.Equal(t, 44160.0, stats.PriceRangeLow)
	assert.Equal(t, 75600.0, stats.PriceRangeHigh)
	assert.Equal(t, 120, stats.MedianDaysOnLot)
	assert.Equal(t, "stub", stats.Source)
}

func TestStubStatsUnknownModel(t *testing.T) {
	stats, err := newStubService(nil).Stats(context.Background(), "Honda", "Civic")

	require.NoError(t, err)
	assert.Equal(t, 55000.0, stats.AvgPrice)
	assert.Equal(t, 50600.0, stats.PriceRangeLow)
	assert.Equal(t, 60500.0, stats.PriceRangeHigh)
}

func TestTrendsCachesResult(t *testing.T) {
	cache := newMemCache()
	svc := newStubService(cache)

	first, err := svc.Trends(context.Background(), "Ford", "F-150")
	require.NoError(t, err)
	assert.Contains(t, cache.data, "market:trends:Ford:F-150")

	second, err := svc.Trends(context.Background(), "Ford", "F-150")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTrendsLiveFetch(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"days_supply": 152, "supply_level": "oversupplied", "price_trend": "declining",
			"incentive_count": 4, "incentive_value": 7500, "inventory_level": "high"}`))
	}))
	defer server.Close()

	svc := NewService(nil, Config{APIKey: "test-key", BaseURL: server.URL}, zap.NewNop())
	svc.backoff = time.Millisecond

	trends, err := svc.Trends(context.Background(), "Ram", "Ram 2500")

	require.NoError(t, err)
	assert.Equal(t, "test-key", gotAuth)
	assert.Equal(t, "marketcheck", trends.Source)
	assert.Equal(t, 152, trends.DaysSupply)
	assert.Equal(t, 2.0, trends.SupplyRatio)
	assert.Equal(t, 4, trends.ActiveIncentiveCount)
	assert.Equal(t, 7500.0, trends.TotalIncentiveValue)
}

func TestLiveFetchRetriesThenSucceeds(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"avg_price": 61000, "price_range_low": 52000, "price_range_high": 74000,
			"median_days_on_lot": 88, "total_active_listings": 240}`))
	}))
	defer server.Close()

	svc := NewService(nil, Config{APIKey: "test-key", BaseURL: server.URL}, zap.NewNop())
	svc.backoff = time.Millisecond

	stats, err := svc.Stats(context.Background(), "Ram", "Ram 2500")

	require.NoError(t, err)
	assert.Equal(t, int32(3), attempts.Load())
	assert.Equal(t, "marketcheck", stats.Source)
	assert.Equal(t, 61000.0, stats.AvgPrice)
	assert.Equal(t, 240, stats.TotalActiveListings)
}

func TestLiveFetchFallsBackToStub(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewService(nil, Config{APIKey: "test-key", BaseURL: server.URL}, zap.NewNop())
	svc.backoff = time.Millisecond

	trends, err := svc.Trends(context.Background(), "Ram", "Ram 2500")

	require.NoError(t, err)
	assert.Equal(t, "stub", trends.Source)
	assert.Equal(t, 318, trends.DaysSupply)
}

func TestLiveFetchOpenCircuitSkipsProvider(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewService(nil, Config{APIKey: "test-key", BaseURL: server.URL}, zap.NewNop())
	svc.backoff = time.Millisecond
	for i := 0; i < failureThreshold; i++ {
		svc.breaker.RecordFailure()
	}

	trends, err := svc.Trends(context.Background(), "Ford", "F-150")

	require.NoError(t, err)
	assert.Equal(t, "stub", trends.Source)
	assert.Zero(t, hits.Load())
}
