package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("AVAILABILITY_CACHE_TTL", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg := Load()
	if cfg.Addr() != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Addr())
	}
	if cfg.AvailabilityCacheTTL != 60*time.Second {
		t.Fatalf("expected 60s ttl, got %s", cfg.AvailabilityCacheTTL)
	}
	if cfg.RateLimitPerMinute != 30 {
		t.Fatalf("expected 30 req/min, got %d", cfg.RateLimitPerMinute)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard origin, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("AVAILABILITY_CACHE_TTL", "5s")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SAMPLING_RATIO", "7")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()
	if cfg.Addr() != ":9090" {
		t.Fatalf("expected :9090, got %s", cfg.Addr())
	}
	if cfg.AvailabilityCacheTTL != 5*time.Second {
		t.Fatalf("expected 5s ttl, got %s", cfg.AvailabilityCacheTTL)
	}
	if !cfg.OTELEnabled {
		t.Fatal("expected otel enabled")
	}
	if cfg.OTELSampleRatio != 1 {
		t.Fatalf("out-of-range ratio should fall back to 1, got %v", cfg.OTELSampleRatio)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.IsProduction() {
		t.Fatal("expected production env")
	}
}

func TestValidate_DefaultSecretInProduction(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_ENV", "production")
	if err := Load().Validate(); !errors.Is(err, ErrDefaultJWTSecret) {
		t.Fatalf("expected ErrDefaultJWTSecret, got %v", err)
	}

	t.Setenv("JWT_SECRET", "s3cr3t-from-vault")
	if err := Load().Validate(); err != nil {
		t.Fatalf("explicit secret should pass: %v", err)
	}

	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_ENV", "development")
	if err := Load().Validate(); err != nil {
		t.Fatalf("default secret is fine outside production: %v", err)
	}
}
