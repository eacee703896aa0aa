package config

import (
	"testing"
	"time"
)

func TestLoadDefaultsAndEnv(t *testing.T) {
	// defaults
	for _, k := range []string{"RECHIGPT_HTTP_ADDR", "RECHIGPT_DB_DSN", "RECHIGPT_JWT_SECRET", "RECHIGPT_TOKEN_TTL", "RECHIGPT_PROVIDER_API_KEY", "GROQ_API_KEY"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.HTTPAddr == "" || cfg.DatabaseDSN == "" || cfg.JWTSecret == "" {
		t.Fatalf("empty config fields")
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("default ttl: %s", cfg.TokenTTL)
	}
	if cfg.ProviderTimeout != 30*time.Second {
		t.Fatalf("default provider timeout: %s", cfg.ProviderTimeout)
	}
	if cfg.ProviderAPIKey != "" {
		t.Fatalf("expected empty provider key")
	}

	// env override
	t.Setenv("RECHIGPT_HTTP_ADDR", ":9999")
	t.Setenv("RECHIGPT_DB_DSN", "file::memory:")
	t.Setenv("RECHIGPT_JWT_SECRET", "secret")
	t.Setenv("RECHIGPT_TOKEN_TTL", "5m")
	t.Setenv("RECHIGPT_PROVIDER_API_KEY", "sk-test")
	cfg = Load()
	if cfg.HTTPAddr != ":9999" || cfg.DatabaseDSN != "file::memory:" || cfg.JWTSecret != "secret" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.TokenTTL != 5*time.Minute {
		t.Fatalf("ttl not applied: %s", cfg.TokenTTL)
	}
	if cfg.ProviderAPIKey != "sk-test" {
		t.Fatalf("provider key not applied")
	}
}

func TestLoad_GroqKeyFallback(t *testing.T) {
	t.Setenv("RECHIGPT_PROVIDER_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "gsk-fallback")
	cfg := Load()
	if cfg.ProviderAPIKey != "gsk-fallback" {
		t.Fatalf("GROQ_API_KEY fallback not applied: %q", cfg.ProviderAPIKey)
	}
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("RECHIGPT_TOKEN_TTL", "not-a-duration")
	cfg := Load()
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("bad duration should use default, got %s", cfg.TokenTTL)
	}
}
