package config

import (
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("WEATHER_API_KEY", "owm-key")
	t.Setenv("ACCESS_TOKEN_TTL", "2m")
	t.Setenv("REFRESH_TOKEN_TTL", "3h")
	t.Setenv("WEATHER_CACHE_TTL", "90s")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, http://localhost:3000")
	// необязательные, но пусть будут
	t.Setenv("ALLOW_CREDENTIALS", "true")
	t.Setenv("COOKIE_DOMAIN", "example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AccessTokenTTL != 2*time.Minute {
		t.Fatalf("AccessTokenTTL want 2m, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 3*time.Hour {
		t.Fatalf("RefreshTokenTTL want 3h, got %v", cfg.RefreshTokenTTL)
	}
	if cfg.WeatherCacheTTL != 90*time.Second {
		t.Fatalf("WeatherCacheTTL want 90s, got %v", cfg.WeatherCacheTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://localhost:3000" {
		t.Fatalf("AllowedOrigins parsed wrong: %v", cfg.AllowedOrigins)
	}

	// дефолты
	if cfg.HTTPAddress != ":8080" {
		t.Fatalf("HTTPAddress default want :8080, got %q", cfg.HTTPAddress)
	}
	if cfg.DatabaseDriver != DriverSQLite {
		t.Fatalf("DatabaseDriver default want sqlite, got %q", cfg.DatabaseDriver)
	}
	if cfg.WeatherCacheBackend != CacheMemory {
		t.Fatalf("WeatherCacheBackend default want memory, got %q", cfg.WeatherCacheBackend)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	// задаём всё, КРОМЕ JWT_SECRET
	t.Setenv("WEATHER_API_KEY", "owm-key")

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to missing JWT_SECRET, got nil")
	}
}

func TestLoad_PostgresNeedsURL(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("WEATHER_API_KEY", "owm-key")
	t.Setenv("DATABASE_DRIVER", "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to missing DATABASE_URL, got nil")
	}
}

func TestLoad_UnknownCacheBackend(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("WEATHER_API_KEY", "owm-key")
	t.Setenv("WEATHER_CACHE_BACKEND", "memcached")

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to unknown cache backend, got nil")
	}
}
