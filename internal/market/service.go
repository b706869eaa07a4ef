package market

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"go.uber.org/zap"

	"dealhawk/backend/internal/refdata"
)

const (
	sourceStub = "stub"
	sourceLive = "marketcheck"

	maxAttempts    = 3
	initialBackoff = time.Second
	maxBackoff     = 10 * time.Second
)

// Config holds market data provider settings. An empty APIKey keeps the
// service on stub data built from the reference tables.
type Config struct {
	APIKey   string
	BaseURL  string
	CacheTTL time.Duration
}

// Service resolves market trends and stats, caching responses and guarding
// the upstream provider with a circuit breaker.
type Service struct {
	cache   Cache
	breaker *CircuitBreaker
	client  *http.Client
	cfg     Config
	logger  *zap.Logger
	now     func() time.Time
	backoff time.Duration
}

// NewService creates a new market service
func NewService(cache Cache, cfg Config, logger *zap.Logger) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 6 * time.Hour
	}
	return &Service{
		cache:   cache,
		breaker: NewCircuitBreaker(),
		client:  &http.Client{Timeout: 10 * time.Second},
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
		backoff: initialBackoff,
	}
}

// Trends returns supply and incentive conditions for a make/model.
func (s *Service) Trends(ctx context.Context, make, model string) (*Trends, error) {
	key := fmt.Sprintf("market:trends:%s:%s", make, model)

	var trends Trends
	if s.cacheGet(ctx, key, &trends) {
		return &trends, nil
	}

	if s.cfg.APIKey != "" {
		trends = s.fetchTrendsLive(ctx, make, model)
	} else {
		trends = s.stubTrends(make, model)
	}

	s.cacheSet(ctx, key, trends)
	return &trends, nil
}

// Stats returns transaction pricing for a make/model.
func (s *Service) Stats(ctx context.Context, make, model string) (*Stats, error) {
	key := fmt.Sprintf("market:stats:%s:%s", make, model)

	var stats Stats
	if s.cacheGet(ctx, key, &stats) {
		return &stats, nil
	}

	if s.cfg.APIKey != "" {
		stats = s.fetchStatsLive(ctx, make, model)
	} else {
		stats = s.stubStats(make, model)
	}

	s.cacheSet(ctx, key, stats)
	return &stats, nil
}

// cacheGet loads a cached response into out. Cache failures degrade to a
// miss.
func (s *Service) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Market cache read failed", zap.Error(err), zap.String("key", key))
		return false
	}
	if data == nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("Market cache entry corrupt", zap.Error(err), zap.String("key", key))
		return false
	}
	return true
}

func (s *Service) cacheSet(ctx context.Context, key string, v interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("Market cache write failed", zap.Error(err), zap.String("key", key))
	}
}

// stubTrends builds trend data from the days-supply table and seeded
// incentive programs.
func (s *Service) stubTrends(make, model string) Trends {
	daysSupply := refdata.DaysSupply(model)
	ratio := float64(daysSupply) / float64(refdata.IndustryAvgDaysSupply)

	supplyLevel, priceTrend, inventoryLevel := "balanced", "stable", "moderate"
	switch {
	case ratio > 1.3:
		supplyLevel, priceTrend, inventoryLevel = "oversupplied", "declining", "high"
	case ratio < 0.7:
		supplyLevel, priceTrend, inventoryLevel = "undersupplied", "rising", "low"
	}

	incentives := activeIncentives(make, model)
	var totalValue float64
	for _, inc := range incentives {
		totalValue += inc.Amount
	}

	return Trends{
		Make:                  make,
		Model:                 model,
		DaysSupply:            daysSupply,
		IndustryAvgDaysSupply: refdata.IndustryAvgDaysSupply,
		SupplyRatio:           math.Round(ratio*100) / 100,
		SupplyLevel:           supplyLevel,
		PriceTrend:            priceTrend,
		ActiveIncentiveCount:  len(incentives),
		TotalIncentiveValue:   totalValue,
		InventoryLevel:        inventoryLevel,
		Source:                sourceStub,
		AsOf:                  s.now().UTC().Format("2006-01-02"),
	}
}

// stubStats estimates price stats from the invoice ratio tables.
func (s *Service) stubStats(make, model string) Stats {
	ratios, ok := refdata.LookupInvoiceRatios(make, model)

	var avgMSRP, lowPrice, highPrice float64
	if ok {
		thresholds := refdata.LookupTrimThresholds(model)
		avgMSRP = (thresholds.BaseMax + thresholds.HighMin) / 2
		lowPrice = math.Round(thresholds.BaseMax * ratios.Base)
		// Loaded trims transact above MSRP
		highPrice = math.Round(thresholds.HighMin * 1.05)
	} else {
		avgMSRP = 55000
		lowPrice = math.Round(avgMSRP * refdata.DefaultInvoiceRatio)
		highPrice = math.Round(avgMSRP * 1.1)
	}

	medianDays := refdata.DaysSupply(model)
	if medianDays > 120 {
		medianDays = 120
	}

	return Stats{
		Make:                make,
		Model:               model,
		AvgPrice:            math.Round(avgMSRP),
		PriceRangeLow:       lowPrice,
		PriceRangeHigh:      highPrice,
		MedianDaysOnLot:     medianDays,
		TotalActiveListings: 0,
		Source:              sourceStub,
		AsOf:                s.now().UTC().Format("2006-01-02"),
	}
}

// fetchTrendsLive queries the provider behind the circuit breaker, falling
// back to stub data whenever the provider cannot answer.
func (s *Service) fetchTrendsLive(ctx context.Context, make, model string) Trends {
	if err := s.breaker.Allow(); err != nil {
		s.logger.Warn("Circuit open, using stub trends",
			zap.String("make", make), zap.String("model", model))
		return s.stubTrends(make, model)
	}

	raw, err := s.fetchJSON(ctx, fmt.Sprintf("%s/trends/%s/%s", s.cfg.BaseURL, make, model))
	if err != nil {
		if s.breaker.RecordFailure() {
			s.logger.Warn("Circuit breaker opened for market data provider")
		}
		s.logger.Warn("Market trends fetch failed, using stub",
			zap.Error(err), zap.String("make", make), zap.String("model", model))
		return s.stubTrends(make, model)
	}
	s.breaker.RecordSuccess()

	daysSupply := intField(raw, "days_supply", refdata.IndustryAvgDaysSupply)
	return Trends{
		Make:                  make,
		Model:                 model,
		DaysSupply:            daysSupply,
		IndustryAvgDaysSupply: refdata.IndustryAvgDaysSupply,
		SupplyRatio:           math.Round(float64(daysSupply)/float64(refdata.IndustryAvgDaysSupply)*100) / 100,
		SupplyLevel:           stringField(raw, "supply_level", "balanced"),
		PriceTrend:            stringField(raw, "price_trend", "stable"),
		ActiveIncentiveCount:  intField(raw, "incentive_count", 0),
		TotalIncentiveValue:   floatField(raw, "incentive_value", 0),
		InventoryLevel:        stringField(raw, "inventory_level", "moderate"),
		Source:                sourceLive,
		AsOf:                  s.now().UTC().Format("2006-01-02"),
	}
}

func (s *Service) fetchStatsLive(ctx context.Context, make, model string) Stats {
	if err := s.breaker.Allow(); err != nil {
		s.logger.Warn("Circuit open, using stub stats",
			zap.String("make", make), zap.String("model", model))
		return s.stubStats(make, model)
	}

	raw, err := s.fetchJSON(ctx, fmt.Sprintf("%s/stats/%s/%s", s.cfg.BaseURL, make, model))
	if err != nil {
		if s.breaker.RecordFailure() {
			s.logger.Warn("Circuit breaker opened for market data provider")
		}
		s.logger.Warn("Market stats fetch failed, using stub",
			zap.Error(err), zap.String("make", make), zap.String("model", model))
		return s.stubStats(make, model)
	}
	s.breaker.RecordSuccess()

	return Stats{
		Make:                make,
		Model:               model,
		AvgPrice:            floatField(raw, "avg_price", 0),
		PriceRangeLow:       floatField(raw, "price_range_low", 0),
		PriceRangeHigh:      floatField(raw, "price_range_high", 0),
		MedianDaysOnLot:     intField(raw, "median_days_on_lot", 0),
		TotalActiveListings: intField(raw, "total_active_listings", 0),
		Source:              sourceLive,
		AsOf:                s.now().UTC().Format("2006-01-02"),
	}
}

// fetchJSON performs a GET with retries and exponential backoff.
func (s *Service) fetchJSON(ctx context.Context, url string) (map[string]interface{}, error) {
	backoff := s.backoff
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", s.cfg.APIKey)

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("provider returned status %d", resp.StatusCode)
			continue
		}

		var raw map[string]interface{}
		err = json.NewDecoder(resp.Body).Decode(&raw)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to decode provider response: %w", err)
			continue
		}
		return raw, nil
	}

	return nil, lastErr
}

func stringField(raw map[string]interface{}, key, fallback string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return fallback
}

func floatField(raw map[string]interface{}, key string, fallback float64) float64 {
	if v, ok := raw[key].(float64); ok {
		return v
	}
	return fallback
}

func intField(raw map[string]interface{}, key string, fallback int) int {
	if v, ok := raw[key].(float64); ok {
		return int(v)
	}
	return fallback
}
