package gnews

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
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

type ArticlesResponse struct {
	TotalArticles int       `json:"totalArticles"`
	Articles      []Article `json:"articles"`
}

type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content,omitempty"`
	URL         string `json:"url"`
	Image       string `json:"image,omitempty"`
	PublishedAt string `json:"publishedAt"`
	Source      Source `json:"source"`
}

type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// HeadlineCategories lists the categories accepted by the top-headlines endpoint
var HeadlineCategories = []string{
	"general", "world", "nation", "business", "technology",
	"entertainment", "sports", "science", "health",
}

func NewService() *Service {
	apiKey := config.GetGNewsAPIKey()
	if apiKey == "" {
		log.Warn().Msg("GNews service not configured - GNEWS_API_KEY missing")
		return nil
	}

	return &Service{
		client:  &http.Client{},
		apiKey:  apiKey,
		baseURL: config.GetGNewsBaseURL(),
	}
}

// SetBaseURL points the service at a different API host
func (s *Service) SetBaseURL(baseURL string) *Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseURL = baseURL
	return s
}

// Search runs a full-text article search capped at max results
func (s *Service) Search(ctx context.Context, query string, max int) (*ArticlesResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	params := url.Values{}
	params.Set("q", query)
	params.Set("lang", "en")
	params.Set("sortby", "publishedAt")
	params.Set("max", strconv.Itoa(max))
	params.Set("apikey", s.apiKey)

	var resp ArticlesResponse
	if err := httpext.GetJSON(ctx, s.client, s.baseURL+"/search?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("gnews search %q: %w", query, err)
	}

	return &resp, nil
}

// TopHeadlines returns one page of headlines for a category
func (s *Service) TopHeadlines(ctx context.Context, category string, page, max int) (*ArticlesResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	params := url.Values{}
	params.Set("category", category)
	params.Set("lang", "en")
	params.Set("country", "us")
	params.Set("page", strconv.Itoa(page))
	params.Set("max", strconv.Itoa(max))
	params.Set("apikey", s.apiKey)

	var resp ArticlesResponse
	if err := httpext.GetJSON(ctx, s.client, s.baseURL+"/top-headlines?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("gnews top headlines %s: %w", category, err)
	}

	return &resp, nil
}
