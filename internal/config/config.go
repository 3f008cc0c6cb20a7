package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string

	// Gemini
	GeminiAPIKey          string
	GeminiModelID         string
	GeminiGroundedModelID string
	GeminiFallbackModelID string
	GatewayTimeout        time.Duration

	// Owner tokens issued at registration
	OwnerTokenSecret string
	OwnerTokenTTL    time.Duration

	// Search sessions; Redis is optional, memory is the default
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
	SessionTTL    time.Duration

	// AI endpoint rate limiting (per client IP)
	AIRateLimitPerSecond float64
	AIRateLimitBurst     int

	SeedDemoDoctors bool
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),

		GeminiAPIKey:          getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
		GeminiModelID:         getEnv("GEMINI_MODEL_ID", "gemini-2.5-flash"),
		GeminiGroundedModelID: getEnv("GEMINI_GROUNDED_MODEL_ID", "gemini-2.5-flash"),
		GeminiFallbackModelID: getEnv("GEMINI_FALLBACK_MODEL_ID", ""),
		GatewayTimeout:        getEnvAsDuration("GATEWAY_TIMEOUT", 0),

		OwnerTokenSecret: getEnv("OWNER_TOKEN_SECRET", ""),
		OwnerTokenTTL:    getEnvAsDuration("OWNER_TOKEN_TTL", 24*time.Hour),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", 2*time.Hour),

		AIRateLimitPerSecond: getEnvAsFloat("AI_RATE_LIMIT_PER_SECOND", 1),
		AIRateLimitBurst:     getEnvAsInt("AI_RATE_LIMIT_BURST", 5),

		SeedDemoDoctors: getEnvAsBool("SEED_DEMO_DOCTORS", true),
	}
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "production")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping blank entries.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
