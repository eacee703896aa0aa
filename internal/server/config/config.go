package config

import (
	"log"
	"os"
	"time"
)

type Config struct {
	HTTPAddr    string
	DatabaseDSN string

	// JWTSecret signs access tokens for the lifetime of the process.
	// Rotating it invalidates every previously issued token.
	JWTSecret string
	TokenTTL  time.Duration

	ProviderBaseURL string
	ProviderAPIKey  string
	ProviderModel   string
	ProviderTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		HTTPAddr:        getEnv("RECHIGPT_HTTP_ADDR", ":8080"),
		DatabaseDSN:     getEnv("RECHIGPT_DB_DSN", "file:rechigpt.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"),
		JWTSecret:       getEnv("RECHIGPT_JWT_SECRET", "dev-secret-change"),
		TokenTTL:        getDuration("RECHIGPT_TOKEN_TTL", 30*time.Minute),
		ProviderBaseURL: getEnv("RECHIGPT_PROVIDER_BASE_URL", "https://api.groq.com/openai/v1"),
		ProviderAPIKey:  getEnv("RECHIGPT_PROVIDER_API_KEY", os.Getenv("GROQ_API_KEY")),
		ProviderModel:   getEnv("RECHIGPT_PROVIDER_MODEL", "meta-llama/llama-4-scout-17b-16e-instruct"),
		ProviderTimeout: getDuration("RECHIGPT_PROVIDER_TIMEOUT", 30*time.Second),
	}
	if cfg.JWTSecret == "dev-secret-change" {
		log.Println("WARNING: using development JWT secret; set RECHIGPT_JWT_SECRET")
	}
	if cfg.ProviderAPIKey == "" {
		log.Println("WARNING: no completion provider API key configured; /chat will fail until RECHIGPT_PROVIDER_API_KEY is set")
	}
	return cfg
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("WARNING: invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
