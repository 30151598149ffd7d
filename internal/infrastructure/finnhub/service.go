package finnhub

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/echo-relay/echo/internal/config"
	"github.com/echo-relay/echo/pkg/httpext"
	"github.com/rs/zerolog/log"
)

type Service struct {
	mu      sync.RWMutex
	client  *http.Client
	apiKey  string
	baseURL string
}

// Quote is the real-time quote payload. Unknown symbols come back with a
// zero current price and null change fields.
type Quote struct {
	Current       float64  `json:"c"`
	Change        *float64 `json:"d"`
	PercentChange *float64 `json:"dp"`
	High          float64  `json:"h"`
	Low           float64  `json:"l"`
	Open          float64  `json:"o"`
	PreviousClose float64  `json:"pc"`
	Timestamp     int64    `json:"t"`
}

func NewService() *Service {
	apiKey := config.GetFinnhubAPIKey()
	if apiKey == "" {
		log.Warn().Msg("Finnhub service not configured - FINNHUB_API_KEY missing")
		return nil
	}

	return &Service{
		client:  &http.Client{},
		apiKey:  apiKey,
		baseURL: config.GetFinnhubBaseURL(),
	}
}

// SetBaseURL points the service at a different API host
func (s *Service) SetBaseURL(baseURL string) *Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseURL = baseURL
	return s
}

// Quote fetches the current quote for a ticker symbol
func (s *Service) Quote(ctx context.Context, symbol string) (*Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("token", s.apiKey)

	var quote Quote
	if err := httpext.GetJSON(ctx, s.client, s.baseURL+"/quote?"+params.Encode(), nil, &quote); err != nil {
		return nil, fmt.Errorf("finnhub quote %s: %w", symbol, err)
	}

	return &quote, nil
}
