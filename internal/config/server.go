package config

const defaultMaxBodyBytes = 2 << 20

// GetPort returns the port the HTTP server listens on
func GetPort() string {
	return GetEnvOrDefault("PORT", "10000")
}

// GetMaxBodyBytes returns the request body limit for inbound requests
func GetMaxBodyBytes() int64 {
	return int64(parseEnvInt("MAX_BODY_BYTES", defaultMaxBodyBytes))
}
