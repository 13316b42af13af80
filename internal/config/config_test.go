package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farescout/fare-discovery-engine/internal/domain"
)

// TestLoad_Defaults tests that all default values load correctly without any env vars.
func TestLoad_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := Load()
	require.NoError(t, err)

	// Server defaults
	assert.Equal(t, 8080, cfg.Server.Port, "default server port")
	assert.Equal(t, "10s", cfg.Server.ReadTimeout.String(), "default read timeout")
	assert.Equal(t, "30s", cfg.Server.WriteTimeout.String(), "default write timeout")

	// Timeout defaults
	assert.Equal(t, "45s", cfg.Timeouts.GlobalSearch.String(), "default global search timeout")
	assert.Equal(t, "10s", cfg.Timeouts.Upstream.String(), "default upstream timeout")

	// Logging defaults
	assert.Equal(t, "info", cfg.Logging.Level, "default log level")
	assert.Equal(t, "json", cfg.Logging.Format, "default log format")

	// App defaults
	assert.Equal(t, "development", cfg.App.Env, "default app environment")

	// Search defaults
	assert.Equal(t, "YVR", cfg.Search.DefaultOrigin, "default origin")
	assert.Equal(t, []string{"ECONOMY", "BUSINESS"}, cfg.Search.DefaultCabins, "default cabins")
	assert.Equal(t, 10, cfg.Search.DefaultTopN, "default top N")
	assert.Equal(t, 8, cfg.Search.MaxConcurrent, "default pool size")

	// Upstream defaults
	assert.Equal(t, "https://test.api.amadeus.com", cfg.Upstream.BaseURL, "default base URL")
	assert.Equal(t, 10.0, cfg.Upstream.RPS, "default RPS")
	assert.Equal(t, 10, cfg.Upstream.Burst, "default burst")

	// Rate limit defaults
	assert.Equal(t, 20, cfg.RateLimits.SessionDailyLimit)
	assert.Equal(t, 10, cfg.RateLimits.IPDailyLimit)
	assert.Equal(t, 2000, cfg.RateLimits.MonthlyCallLimit)

	// Cache defaults
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, "30m0s", cfg.Cache.TTL.String())
	assert.Equal(t, 256, cfg.Cache.MaxEntries)
	assert.Equal(t, 0, cfg.Redis.DB)
}

// TestLoad_EnvironmentOverrides tests that environment variables override defaults.
func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnvVars(t)

	setEnvVars(t, map[string]string{
		"SERVER_PORT":              "3000",
		"TIMEOUT_GLOBAL_SEARCH":    "60s",
		"UPSTREAM_TIMEOUT":         "5s",
		"LOG_LEVEL":                "debug",
		"LOG_FORMAT":               "console",
		"APP_ENV":                  "staging",
		"SEARCH_DEFAULT_ORIGIN":    "SEA",
		"SEARCH_DEFAULT_CABINS":    "ECONOMY,BUSINESS,FIRST",
		"SEARCH_DEFAULT_TOP_N":     "5",
		"SEARCH_MAX_CONCURRENT":    "4",
		"UPSTREAM_BASE_URL":        "https://api.example.com",
		"UPSTREAM_RPS":             "2.5",
		"RATE_SESSION_DAILY_LIMIT": "50",
		"CACHE_BACKEND":            "none",
		"CACHE_TTL":                "10m",
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "1m0s", cfg.Timeouts.GlobalSearch.String())
	assert.Equal(t, "5s", cfg.Timeouts.Upstream.String())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "staging", cfg.App.Env)
	assert.Equal(t, "SEA", cfg.Search.DefaultOrigin)
	assert.Equal(t, []string{"ECONOMY", "BUSINESS", "FIRST"}, cfg.Search.DefaultCabins)
	assert.Equal(t, 5, cfg.Search.DefaultTopN)
	assert.Equal(t, 4, cfg.Search.MaxConcurrent)
	assert.Equal(t, "https://api.example.com", cfg.Upstream.BaseURL)
	assert.Equal(t, 2.5, cfg.Upstream.RPS)
	assert.Equal(t, 50, cfg.RateLimits.SessionDailyLimit)
	assert.Equal(t, "none", cfg.Cache.Backend)
	assert.Equal(t, "10m0s", cfg.Cache.TTL.String())
}

// TestLoad_PartialOverrides tests that only overridden values change.
func TestLoad_PartialOverrides(t *testing.T) {
	clearEnvVars(t)

	setEnvVars(t, map[string]string{
		"SERVER_PORT": "9000",
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port, "overridden port")
	assert.Equal(t, "45s", cfg.Timeouts.GlobalSearch.String(), "default global timeout")
	assert.Equal(t, "YVR", cfg.Search.DefaultOrigin, "default origin")
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		wantMsg string
	}{
		{
			name:    "port out of range",
			vars:    map[string]string{"SERVER_PORT": "70000"},
			wantMsg: "SERVER_PORT",
		},
		{
			name: "upstream timeout exceeds global",
			vars: map[string]string{
				"TIMEOUT_GLOBAL_SEARCH": "5s",
				"UPSTREAM_TIMEOUT":      "10s",
			},
			wantMsg: "UPSTREAM_TIMEOUT",
		},
		{
			name:    "bad log level",
			vars:    map[string]string{"LOG_LEVEL": "verbose"},
			wantMsg: "LOG_LEVEL",
		},
		{
			name:    "bad app env",
			vars:    map[string]string{"APP_ENV": "qa"},
			wantMsg: "APP_ENV",
		},
		{
			name:    "bad default cabin",
			vars:    map[string]string{"SEARCH_DEFAULT_CABINS": "ECONOMY,PREMIUM"},
			wantMsg: "SEARCH_DEFAULT_CABINS",
		},
		{
			name:    "top N out of bounds",
			vars:    map[string]string{"SEARCH_DEFAULT_TOP_N": "50"},
			wantMsg: "SEARCH_DEFAULT_TOP_N",
		},
		{
			name:    "zero concurrency",
			vars:    map[string]string{"SEARCH_MAX_CONCURRENT": "0"},
			wantMsg: "SEARCH_MAX_CONCURRENT",
		},
		{
			name:    "missing credentials in production",
			vars:    map[string]string{"APP_ENV": "production"},
			wantMsg: "UPSTREAM_API_KEY",
		},
		{
			name:    "bad cache backend",
			vars:    map[string]string{"CACHE_BACKEND": "memcached"},
			wantMsg: "CACHE_BACKEND",
		},
		{
			name:    "redis backend without address",
			vars:    map[string]string{"CACHE_BACKEND": "redis"},
			wantMsg: "REDIS_ADDR",
		},
		{
			name:    "zero monthly quota",
			vars:    map[string]string{"RATE_MONTHLY_CALL_LIMIT": "0"},
			wantMsg: "RATE_MONTHLY_CALL_LIMIT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			setEnvVars(t, tt.vars)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_ProductionWithCredentials(t *testing.T) {
	clearEnvVars(t)
	setEnvVars(t, map[string]string{
		"APP_ENV":             "production",
		"UPSTREAM_API_KEY":    "key",
		"UPSTREAM_API_SECRET": "secret",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}

func TestDefaultCabinClasses(t *testing.T) {
	cfg := SearchConfig{DefaultCabins: []string{"economy", "BUSINESS"}}
	assert.Equal(t, []domain.CabinClass{domain.CabinEconomy, domain.CabinBusiness},
		cfg.DefaultCabinClasses())
}

// clearEnvVars removes all config-related environment variables.
func clearEnvVars(t *testing.T) {
	t.Helper()
	envVars := []string{
		"SERVER_PORT",
		"SERVER_READ_TIMEOUT",
		"SERVER_WRITE_TIMEOUT",
		"TIMEOUT_GLOBAL_SEARCH",
		"UPSTREAM_TIMEOUT",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"APP_ENV",
		"SEARCH_DEFAULT_ORIGIN",
		"SEARCH_DEFAULT_CABINS",
		"SEARCH_DEFAULT_TOP_N",
		"SEARCH_MAX_CONCURRENT",
		"UPSTREAM_BASE_URL",
		"UPSTREAM_API_KEY",
		"UPSTREAM_API_SECRET",
		"UPSTREAM_RPS",
		"UPSTREAM_BURST",
		"RATE_SESSION_DAILY_LIMIT",
		"RATE_IP_DAILY_LIMIT",
		"RATE_MONTHLY_CALL_LIMIT",
		"CACHE_BACKEND",
		"CACHE_TTL",
		"CACHE_MAX_ENTRIES",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

// setEnvVars sets multiple environment variables.
func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		os.Setenv(k, v)
	}
}
