package tmdb

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

type SearchResponse struct {
	Page         int     `json:"page"`
	TotalResults int     `json:"total_results"`
	Results      []Movie `json:"results"`
}

type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Overview    string  `json:"overview"`
}

func NewService() *Service {
	apiKey := config.GetTMDBAPIKey()
	if apiKey == "" {
		log.Warn().Msg("TMDB service not configured - TMDB_API_KEY missing")
		return nil
	}

	return &Service{
		client:  &http.Client{},
		apiKey:  apiKey,
		baseURL: config.GetTMDBBaseURL(),
	}
}

// SetBaseURL points the service at a different API host
func (s *Service) SetBaseURL(baseURL string) *Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseURL = baseURL
	return s
}

// SearchMovies runs a title search
func (s *Service) SearchMovies(ctx context.Context, title string) (*SearchResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	params := url.Values{}
	params.Set("query", title)
	params.Set("include_adult", "false")
	params.Set("language", "en-US")
	params.Set("page", "1")
	params.Set("api_key", s.apiKey)

	var resp SearchResponse
	if err := httpext.GetJSON(ctx, s.client, s.baseURL+"/search/movie?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("tmdb search %q: %w", title, err)
	}

	return &resp, nil
}
