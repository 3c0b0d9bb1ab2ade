package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Kgee7/EarnBull/internal/config"
	"github.com/Kgee7/EarnBull/internal/logger"
)

// Rate is a USD→GHS exchange rate snapshot. Fresh=false marks a stale cache
// hit or the configured fallback constant.
type Rate struct {
	Value float64 `json:"rate"`
	Fresh bool    `json:"is_fresh"`
}

type RatesService struct {
	apiURL   string
	fallback float64
	client   *http.Client

	cacheMu   sync.RWMutex
	cache     *Rate
	cacheTime time.Time
	cacheTTL  time.Duration
}

func NewRatesService(cfg config.RatesConfig) *RatesService {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RatesService{
		apiURL:   cfg.APIURL,
		fallback: cfg.FallbackGHS,
		cacheTTL: ttl,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// USDToGHS returns the current rate, serving from cache within the TTL. On
// fetch failure it degrades to the last cached value, then to the configured
// fallback constant, both flagged non-fresh. It errors only when no usable
// rate exists at all.
func (s *RatesService) USDToGHS(ctx context.Context) (Rate, error) {
	s.cacheMu.RLock()
	if s.cache != nil && time.Since(s.cacheTime) < s.cacheTTL {
		rate := *s.cache
		s.cacheMu.RUnlock()
		return rate, nil
	}
	s.cacheMu.RUnlock()

	value, err := s.fetchGHSRate(ctx)
	if err != nil {
		logger.Get().Warn("exchange rate fetch failed", zap.Error(err))

		s.cacheMu.RLock()
		cached := s.cache
		s.cacheMu.RUnlock()
		if cached != nil {
			return Rate{Value: cached.Value, Fresh: false}, nil
		}

		if s.fallback > 0 {
			return Rate{Value: s.fallback, Fresh: false}, nil
		}
		return Rate{}, fmt.Errorf("no usable rate: %w", err)
	}

	rate := Rate{Value: value, Fresh: true}
	s.cacheMu.Lock()
	s.cache = &rate
	s.cacheTime = time.Now()
	s.cacheMu.Unlock()

	return rate, nil
}

func (s *RatesService) fetchGHSRate(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rates api returned status %d", resp.StatusCode)
	}

	var result struct {
		Result string             `json:"result"`
		Rates  map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, err
	}

	ghs := result.Rates["GHS"]
	if ghs <= 0 {
		return 0, fmt.Errorf("invalid GHS rate")
	}
	return ghs, nil
}
