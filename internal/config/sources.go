package config

import "github.com/rs/zerolog/log"

func getSourceKey(key string) string {
	value := GetEnvOrDefault(key, "")
	if value == "" {
		log.Warn().Str("key", key).Msg("Live data source key not set - source will be unavailable")
	}
	return value
}

// GetFinnhubAPIKey returns the stock quote API key
func GetFinnhubAPIKey() string {
	return getSourceKey("FINNHUB_API_KEY")
}

func GetFinnhubBaseURL() string {
	return GetEnvOrDefault("FINNHUB_BASE_URL", "https://finnhub.io/api/v1")
}

// GetCoinGeckoAPIKey returns the optional CoinGecko demo key. The public
// endpoint works without one.
func GetCoinGeckoAPIKey() string {
	return GetEnvOrDefault("COINGECKO_API_KEY", "")
}

func GetCoinGeckoBaseURL() string {
	return GetEnvOrDefault("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3")
}

// GetTMDBAPIKey returns the movie search API key
func GetTMDBAPIKey() string {
	return getSourceKey("TMDB_API_KEY")
}

func GetTMDBBaseURL() string {
	return GetEnvOrDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
}

// GetGNewsAPIKey returns the news search API key
func GetGNewsAPIKey() string {
	return getSourceKey("GNEWS_API_KEY")
}

func GetGNewsBaseURL() string {
	return GetEnvOrDefault("GNEWS_BASE_URL", "https://gnews.io/api/v4")
}
