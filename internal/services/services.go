package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/echo-relay/echo/internal/connections"
	"github.com/echo-relay/echo/internal/infrastructure/coingecko"
	"github.com/echo-relay/echo/internal/infrastructure/finnhub"
	"github.com/echo-relay/echo/internal/infrastructure/gnews"
	"github.com/echo-relay/echo/internal/infrastructure/tmdb"
	"github.com/echo-relay/echo/internal/services/augment"
	"github.com/echo-relay/echo/internal/services/chat"
	"github.com/echo-relay/echo/internal/services/relay"
	"github.com/echo-relay/echo/internal/services/sources"
	"github.com/rs/zerolog/log"
)

var (
	// Mutex for thread-safe initialization
	servicesMu sync.RWMutex
)

type Services struct {
	augmentService    *augment.Service
	chatService       *chat.Implementation
	coinGeckoService  *coingecko.Service
	connectionManager *connections.Manager
	finnhubService    *finnhub.Service
	gnewsService      *gnews.Service
	relayService      *relay.Service
	tmdbService       *tmdb.Service
}

// InitializeServices initializes all required services
func InitializeServices() (*Services, error) {
	servicesMu.Lock()
	defer servicesMu.Unlock()

	log.Info().Msg("Initializing core services")

	// Initialize optional live data sources
	finnhubService := finnhub.NewService()
	coinGeckoService := coingecko.NewService()
	tmdbService := tmdb.NewService()
	gnewsService := gnews.NewService()
	log.Info().Msg("Initializing infrastructure services")

	augmentService := augment.NewService(fetchers(finnhubService, coinGeckoService, tmdbService, gnewsService, time.Now)...)
	log.Info().
		Interface("categories", categoryNames(augmentService)).
		Msg("Initializing dispatch service")

	// Initialize completion relay (required)
	relayService, err := relay.NewService()
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize completion relay - required for message processing")
		return nil, fmt.Errorf("failed to initialize completion relay: %w", err)
	}
	log.Info().Msg("Initializing completion relay")

	// Initialize chat service (required)
	chatService, err := chat.NewService(augmentService, relayService)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize chat service - required for message processing")
		return nil, fmt.Errorf("failed to initialize chat service: %w", err)
	}
	log.Info().Msg("Initializing chat service")

	connectionManager := connections.NewManager(connections.DefaultTimeouts)

	log.Info().Msg("All services initialized successfully")

	return &Services{
		augmentService:    augmentService,
		chatService:       chatService,
		coinGeckoService:  coinGeckoService,
		connectionManager: connectionManager,
		finnhubService:    finnhubService,
		gnewsService:      gnewsService,
		relayService:      relayService,
		tmdbService:       tmdbService,
	}, nil
}

// fetchers builds one fetcher per configured source. Unconfigured sources
// are left out rather than passed as typed nils.
func fetchers(stock *finnhub.Service, crypto *coingecko.Service, movies *tmdb.Service, news *gnews.Service, now sources.Clock) []sources.Fetcher {
	var out []sources.Fetcher
	if stock != nil {
		out = append(out, sources.NewStockFetcher(stock, now))
	}
	if crypto != nil {
		out = append(out, sources.NewCryptoFetcher(crypto, now))
	}
	if movies != nil {
		out = append(out, sources.NewMovieFetcher(movies, now))
	}
	if news != nil {
		out = append(out, sources.NewNewsFetcher(news, now))
	}
	return out
}

func categoryNames(s *augment.Service) []string {
	var names []string
	for _, c := range s.Categories() {
		names = append(names, c.String())
	}
	return names
}

// GetChatService returns the chat service
func (s *Services) GetChatService() *chat.Implementation {
	return s.chatService
}

// GetAugmentService returns the live data dispatcher
func (s *Services) GetAugmentService() *augment.Service {
	return s.augmentService
}

// GetNewsService returns the headline source, or nil when not configured
func (s *Services) GetNewsService() *gnews.Service {
	return s.gnewsService
}

// GetConnectionManager returns the WebSocket connection tracker
func (s *Services) GetConnectionManager() *connections.Manager {
	return s.connectionManager
}
