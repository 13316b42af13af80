// Package main is the entry point for the fare discovery engine.
//
//	@title						Fare Discovery Engine API
//	@version					1.0.0
//	@description				A fare discovery service that finds cheap destinations, flexible travel dates, and upgrade deals over a metered flight-data provider.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/farescout/fare-discovery-engine/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/farescout/fare-discovery-engine/docs"

	// Application layers
	searchhttp "github.com/farescout/fare-discovery-engine/internal/adapter/http"
	"github.com/farescout/fare-discovery-engine/internal/adapter/http/middleware"
	"github.com/farescout/fare-discovery-engine/internal/cache"
	"github.com/farescout/fare-discovery-engine/internal/config"
	"github.com/farescout/fare-discovery-engine/internal/domain"
	"github.com/farescout/fare-discovery-engine/internal/infrastructure/logger"
	"github.com/farescout/fare-discovery-engine/internal/infrastructure/timeutil"
	"github.com/farescout/fare-discovery-engine/internal/ratelimit"
	"github.com/farescout/fare-discovery-engine/internal/refdata"
	"github.com/farescout/fare-discovery-engine/internal/upstream/amadeus"
	"github.com/farescout/fare-discovery-engine/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger with config
	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "fare-discovery",
	})
	logger.SetGlobal(log)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("cache_backend", cfg.Cache.Backend).
		Msg("Configuration loaded")

	clock := timeutil.NewRealClock()

	// Upstream client with its global request-rate ceiling
	source := amadeus.NewClient(amadeus.Config{
		BaseURL:   cfg.Upstream.BaseURL,
		APIKey:    cfg.Upstream.APIKey,
		APISecret: cfg.Upstream.APISecret,
		Timeout:   cfg.Timeouts.Upstream,
		RPS:       cfg.Upstream.RPS,
		Burst:     cfg.Upstream.Burst,
	}, log)

	// Admission gate: per-identity daily searches plus the monthly call quota
	gate := ratelimit.NewGate(ratelimit.Config{
		SessionDailyLimit: cfg.RateLimits.SessionDailyLimit,
		IPDailyLimit:      cfg.RateLimits.IPDailyLimit,
		MonthlyCallLimit:  cfg.RateLimits.MonthlyCallLimit,
	}, clock)

	resultCache, err := buildCache(cfg, clock)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache backend")
	}
	defer resultCache.Close()

	searchUseCase := usecase.NewFareSearchUseCase(source, gate, resultCache, clock, log, &usecase.Config{
		GlobalTimeout:   cfg.Timeouts.GlobalSearch,
		UpstreamTimeout: cfg.Timeouts.Upstream,
		MaxConcurrent:   cfg.Search.MaxConcurrent,
		Defaults: domain.SearchDefaults{
			Origin:            cfg.Search.DefaultOrigin,
			Cabins:            cfg.Search.DefaultCabinClasses(),
			TopN:              cfg.Search.DefaultTopN,
			CurrencyForOrigin: refdata.CurrencyForAirport,
		},
	})

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Middleware: request ID, request logging, recovery, client identity
	middleware.Setup(e, log.Logger)

	// Routes
	handler := searchhttp.NewSearchHandler(searchUseCase, gate)
	searchhttp.RegisterRoutes(e, handler)

	// Swagger documentation endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(e, log)
}

// buildCache constructs the configured result cache backend.
func buildCache(cfg *config.Config, clock timeutil.Clock) (cache.ResultCache, error) {
	switch cfg.Cache.Backend {
	case "memory":
		return cache.NewMemoryCache(cache.MemoryConfig{
			TTL:        cfg.Cache.TTL,
			MaxEntries: cfg.Cache.MaxEntries,
		}, clock), nil
	case "redis":
		return cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Cache.TTL,
		})
	default:
		return cache.NewNoOpCache(), nil
	}
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
