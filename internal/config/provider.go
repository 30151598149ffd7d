package config

import "github.com/rs/zerolog/log"

const defaultGroqAPIURL = "https://api.groq.com/openai/v1/chat/completions"

// GetGroqAPIKey returns the model provider API key
func GetGroqAPIKey() string {
	value := GetEnvOrDefault("GROQ_API_KEY", "")
	if value == "" {
		log.Error().Msg("GROQ_API_KEY environment variable not set")
	}
	return value
}

// GetGroqAPIURL returns the chat completions endpoint of the model provider
func GetGroqAPIURL() string {
	return GetEnvOrDefault("GROQ_API_URL", defaultGroqAPIURL)
}
