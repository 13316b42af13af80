// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/farescout/fare-discovery-engine/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Timeouts   TimeoutConfig
	Logging    LoggingConfig
	App        AppConfig
	Search     SearchConfig
	Upstream   UpstreamConfig
	RateLimits RateLimitConfig
	Cache      CacheConfig
	Redis      RedisConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
}

// TimeoutConfig holds timeout settings for the search pipeline.
type TimeoutConfig struct {
	GlobalSearch time.Duration `env:"TIMEOUT_GLOBAL_SEARCH" envDefault:"45s"`
	Upstream     time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// SearchConfig holds search pipeline defaults and tuning.
type SearchConfig struct {
	DefaultOrigin string   `env:"SEARCH_DEFAULT_ORIGIN" envDefault:"YVR"`
	DefaultCabins []string `env:"SEARCH_DEFAULT_CABINS" envSeparator:"," envDefault:"ECONOMY,BUSINESS"`
	DefaultTopN   int      `env:"SEARCH_DEFAULT_TOP_N" envDefault:"10"`
	MaxConcurrent int      `env:"SEARCH_MAX_CONCURRENT" envDefault:"8"`
}

// UpstreamConfig holds the fare provider connection settings.
type UpstreamConfig struct {
	BaseURL   string  `env:"UPSTREAM_BASE_URL" envDefault:"https://test.api.amadeus.com"`
	APIKey    string  `env:"UPSTREAM_API_KEY"`
	APISecret string  `env:"UPSTREAM_API_SECRET"`
	RPS       float64 `env:"UPSTREAM_RPS" envDefault:"10"`
	Burst     int     `env:"UPSTREAM_BURST" envDefault:"10"`
}

// RateLimitConfig holds the admission ceilings.
type RateLimitConfig struct {
	SessionDailyLimit int `env:"RATE_SESSION_DAILY_LIMIT" envDefault:"20"`
	IPDailyLimit      int `env:"RATE_IP_DAILY_LIMIT" envDefault:"10"`
	MonthlyCallLimit  int `env:"RATE_MONTHLY_CALL_LIMIT" envDefault:"2000"`
}

// CacheConfig holds the result cache settings.
type CacheConfig struct {
	Backend    string        `env:"CACHE_BACKEND" envDefault:"memory"`
	TTL        time.Duration `env:"CACHE_TTL" envDefault:"30m"`
	MaxEntries int           `env:"CACHE_MAX_ENTRIES" envDefault:"256"`
}

// RedisConfig holds the Redis connection settings for the redis cache backend.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	// Validate server port
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	// Validate timeouts are positive
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Timeouts.GlobalSearch <= 0 {
		return fmt.Errorf("TIMEOUT_GLOBAL_SEARCH must be positive")
	}
	if cfg.Timeouts.Upstream <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}

	// Validate per-call timeout is less than global timeout
	if cfg.Timeouts.Upstream >= cfg.Timeouts.GlobalSearch {
		return fmt.Errorf("UPSTREAM_TIMEOUT (%s) should be less than TIMEOUT_GLOBAL_SEARCH (%s)",
			cfg.Timeouts.Upstream, cfg.Timeouts.GlobalSearch)
	}

	// Validate log level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	// Validate log format
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	// Validate app environment
	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	if err := validateSearch(cfg); err != nil {
		return err
	}
	if err := validateUpstream(cfg); err != nil {
		return err
	}
	if err := validateRateLimits(cfg); err != nil {
		return err
	}
	return validateCache(cfg)
}

func validateSearch(cfg *Config) error {
	if len(cfg.Search.DefaultOrigin) != 3 {
		return fmt.Errorf("SEARCH_DEFAULT_ORIGIN must be a 3-letter IATA code, got %q", cfg.Search.DefaultOrigin)
	}
	if len(cfg.Search.DefaultCabins) == 0 {
		return fmt.Errorf("SEARCH_DEFAULT_CABINS must name at least one cabin")
	}
	for _, cabin := range cfg.Search.DefaultCabins {
		if _, ok := domain.ParseCabin(cabin); !ok {
			return fmt.Errorf("SEARCH_DEFAULT_CABINS contains unsupported cabin %q", cabin)
		}
	}
	if cfg.Search.DefaultTopN < domain.MinTopN || cfg.Search.DefaultTopN > domain.MaxTopN {
		return fmt.Errorf("SEARCH_DEFAULT_TOP_N must be between %d and %d, got %d",
			domain.MinTopN, domain.MaxTopN, cfg.Search.DefaultTopN)
	}
	if cfg.Search.MaxConcurrent < 1 {
		return fmt.Errorf("SEARCH_MAX_CONCURRENT must be at least 1, got %d", cfg.Search.MaxConcurrent)
	}
	return nil
}

func validateUpstream(cfg *Config) error {
	if cfg.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if cfg.Upstream.RPS <= 0 {
		return fmt.Errorf("UPSTREAM_RPS must be positive")
	}
	if cfg.Upstream.Burst < 1 {
		return fmt.Errorf("UPSTREAM_BURST must be at least 1")
	}

	// Credentials may be empty in development against a stub, never in production
	if cfg.IsProduction() && (cfg.Upstream.APIKey == "" || cfg.Upstream.APISecret == "") {
		return fmt.Errorf("UPSTREAM_API_KEY and UPSTREAM_API_SECRET are required in production")
	}
	return nil
}

func validateRateLimits(cfg *Config) error {
	if cfg.RateLimits.SessionDailyLimit < 1 {
		return fmt.Errorf("RATE_SESSION_DAILY_LIMIT must be at least 1")
	}
	if cfg.RateLimits.IPDailyLimit < 1 {
		return fmt.Errorf("RATE_IP_DAILY_LIMIT must be at least 1")
	}
	if cfg.RateLimits.MonthlyCallLimit < 1 {
		return fmt.Errorf("RATE_MONTHLY_CALL_LIMIT must be at least 1")
	}
	return nil
}

func validateCache(cfg *Config) error {
	validBackends := map[string]bool{"memory": true, "redis": true, "none": true}
	if !validBackends[cfg.Cache.Backend] {
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, redis, none; got %q", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if cfg.Cache.Backend == "memory" && cfg.Cache.MaxEntries < 1 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must be at least 1")
	}
	if cfg.Cache.Backend == "redis" && cfg.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
	}
	return nil
}

// DefaultCabinClasses parses the configured default cabin list into domain
// values. Validation has already rejected unsupported names.
func (c *SearchConfig) DefaultCabinClasses() []domain.CabinClass {
	cabins := make([]domain.CabinClass, 0, len(c.DefaultCabins))
	for _, s := range c.DefaultCabins {
		if cabin, ok := domain.ParseCabin(s); ok {
			cabins = append(cabins, cabin)
		}
	}
	return cabins
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
