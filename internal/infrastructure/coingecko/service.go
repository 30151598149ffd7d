package coingecko

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/echo-relay/echo/internal/config"
	"github.com/echo-relay/echo/pkg/httpext"
)

type Service struct {
	mu      sync.RWMutex
	client  *http.Client
	apiKey  string
	baseURL string
}

// Market is one coin entry of the markets endpoint. Every numeric field may
// be null.
type Market struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	CurrentPrice             *float64 `json:"current_price"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
	High24h                  *float64 `json:"high_24h"`
	Low24h                   *float64 `json:"low_24h"`
	MarketCap                *float64 `json:"market_cap"`
	TotalVolume              *float64 `json:"total_volume"`
}

// NewService always returns a service; the public API works without a key
func NewService() *Service {
	return &Service{
		client:  &http.Client{},
		apiKey:  config.GetCoinGeckoAPIKey(),
		baseURL: config.GetCoinGeckoBaseURL(),
	}
}

// SetBaseURL points the service at a different API host
func (s *Service) SetBaseURL(baseURL string) *Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseURL = baseURL
	return s
}

// Markets fetches market data for every coin id in a single request
func (s *Service) Markets(ctx context.Context, ids []string, vsCurrency string) ([]Market, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	params := url.Values{}
	params.Set("vs_currency", vsCurrency)
	params.Set("ids", strings.Join(ids, ","))

	headers := http.Header{}
	if s.apiKey != "" {
		headers.Set("x-cg-demo-api-key", s.apiKey)
	}

	var markets []Market
	if err := httpext.GetJSON(ctx, s.client, s.baseURL+"/coins/markets?"+params.Encode(), headers, &markets); err != nil {
		return nil, fmt.Errorf("coingecko markets %v: %w", ids, err)
	}

	return markets, nil
}
