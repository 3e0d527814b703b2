package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	TablePrefix string

	// Identity provider (Supabase-style)
	SupabaseURL     string
	SupabaseDBURL   string
	SupabaseJWKSURL string // Constructed from SupabaseURL + /auth/v1/.well-known/jwks.json

	// Demo identity used outside prod when no bearer token is present
	DemoEmail string
	DemoName  string

	// Grammar / AI endpoint (OpenRouter-compatible chat completions)
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	GrammarModel      string
	GrammarCacheTTL   time.Duration

	// Redis (grammar result cache)
	RedisURL string

	// Object storage (S3/R2-compatible)
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageUseSSL    bool

	// Grammar endpoint rate limit (token bucket)
	GrammarRateLimit int // tokens per hour, also the burst capacity
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	supabaseURL := getEnv("SUPABASE_URL", "")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix: getTablePrefix(env),

		SupabaseURL:     supabaseURL,
		SupabaseDBURL:   getEnv("SUPABASE_DB_URL", ""),
		SupabaseJWKSURL: supabaseURL + "/auth/v1/.well-known/jwks.json",

		DemoEmail: getEnv("DEMO_EMAIL", "demo@inkwell.local"),
		DemoName:  getEnv("DEMO_NAME", "Demo User"),

		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		GrammarModel:      getEnv("GRAMMAR_MODEL", "meta-llama/llama-3.1-8b-instruct"),
		GrammarCacheTTL:   time.Duration(getEnvInt("GRAMMAR_CACHE_TTL_SECONDS", 86400)) * time.Second,

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", "localhost:9000"),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey: getEnv("STORAGE_SECRET_KEY", ""),
		StorageBucket:    getEnv("STORAGE_BUCKET", "inkwell-uploads"),
		StorageUseSSL:    getEnv("STORAGE_USE_SSL", "true") == "true",

		GrammarRateLimit: getEnvInt("GRAMMAR_RATE_LIMIT_PER_HOUR", 20),
	}
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
