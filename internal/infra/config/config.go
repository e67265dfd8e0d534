package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	HTTPAddress      string
	HTTPSCertFile    string
	HTTPSKeyFile     string
	AllowedOrigins   []string
	AllowCredentials bool
	CookieDomain     string

	DatabaseDriver string
	DatabasePath   string
	DatabaseURL    string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	JWTSecret       string
	Issuer          string
	Audience        string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	PasswordPepper  string

	WeatherAPIKey       string
	WeatherAPIURL       string
	WeatherTimeout      time.Duration
	WeatherCacheTTL     time.Duration
	WeatherCacheBackend string
	WeatherRateRPS      float64
	WeatherRateBurst    int

	RateLimitRPS   float64
	RateLimitBurst int

	ShutdownTimeout time.Duration
	LogLevel        string
}

func Load() (*Config, error) {
	// .env подхватывается как у оригинального сервиса; уже выставленные
	// переменные окружения имеют приоритет.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	setDefaults(v)

	keys := []string{
		"HTTP_ADDRESS", "HTTPS_CERT_FILE", "HTTPS_KEY_FILE",
		"ALLOWED_ORIGINS", "ALLOW_CREDENTIALS", "COOKIE_DOMAIN",
		"DATABASE_DRIVER", "DATABASE_PATH", "DATABASE_URL",
		"REDIS_ADDRESS", "REDIS_PASSWORD", "REDIS_DB",
		"JWT_SECRET", "JWT_ISSUER", "JWT_AUDIENCE",
		"ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL", "PASSWORD_PEPPER",
		"WEATHER_API_KEY", "WEATHER_API_URL", "WEATHER_TIMEOUT",
		"WEATHER_CACHE_TTL", "WEATHER_CACHE_BACKEND",
		"WEATHER_RATE_RPS", "WEATHER_RATE_BURST",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
		"SHUTDOWN_TIMEOUT", "LOG_LEVEL",
	}
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	cfg := &Config{
		HTTPAddress:      v.GetString("HTTP_ADDRESS"),
		HTTPSCertFile:    v.GetString("HTTPS_CERT_FILE"),
		HTTPSKeyFile:     v.GetString("HTTPS_KEY_FILE"),
		AllowedOrigins:   splitOrigins(v.GetString("ALLOWED_ORIGINS")),
		AllowCredentials: v.GetBool("ALLOW_CREDENTIALS"),
		CookieDomain:     v.GetString("COOKIE_DOMAIN"),

		DatabaseDriver: v.GetString("DATABASE_DRIVER"),
		DatabasePath:   v.GetString("DATABASE_PATH"),
		DatabaseURL:    v.GetString("DATABASE_URL"),

		RedisAddress:  v.GetString("REDIS_ADDRESS"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		JWTSecret:       v.GetString("JWT_SECRET"),
		Issuer:          v.GetString("JWT_ISSUER"),
		Audience:        v.GetString("JWT_AUDIENCE"),
		AccessTokenTTL:  v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL: v.GetDuration("REFRESH_TOKEN_TTL"),
		PasswordPepper:  v.GetString("PASSWORD_PEPPER"),

		WeatherAPIKey:       v.GetString("WEATHER_API_KEY"),
		WeatherAPIURL:       v.GetString("WEATHER_API_URL"),
		WeatherTimeout:      v.GetDuration("WEATHER_TIMEOUT"),
		WeatherCacheTTL:     v.GetDuration("WEATHER_CACHE_TTL"),
		WeatherCacheBackend: v.GetString("WEATHER_CACHE_BACKEND"),
		WeatherRateRPS:      v.GetFloat64("WEATHER_RATE_RPS"),
		WeatherRateBurst:    v.GetInt("WEATHER_RATE_BURST"),

		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),

		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		LogLevel:        v.GetString("LOG_LEVEL"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_ADDRESS", ":8080")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_PATH", "weatherapp.db")
	v.SetDefault("REDIS_ADDRESS", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_ISSUER", "weatherapp")
	v.SetDefault("JWT_AUDIENCE", "weatherapp-web")
	v.SetDefault("ACCESS_TOKEN_TTL", "15m")
	v.SetDefault("REFRESH_TOKEN_TTL", "720h")
	v.SetDefault("WEATHER_API_URL", "https://api.openweathermap.org/data/2.5/weather")
	v.SetDefault("WEATHER_TIMEOUT", "5s")
	v.SetDefault("WEATHER_CACHE_TTL", "5m")
	v.SetDefault("WEATHER_CACHE_BACKEND", CacheMemory)
	v.SetDefault("WEATHER_RATE_RPS", 5)
	v.SetDefault("WEATHER_RATE_BURST", 10)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("LOG_LEVEL", "info")
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET не задан")
	}
	if c.WeatherAPIKey == "" {
		return fmt.Errorf("WEATHER_API_KEY не задан")
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("DATABASE_PATH не задан")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL обязателен при DATABASE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("неизвестный DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	switch c.WeatherCacheBackend {
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("неизвестный WEATHER_CACHE_BACKEND %q", c.WeatherCacheBackend)
	}

	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("TTL токенов должны быть положительными")
	}

	return nil
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
