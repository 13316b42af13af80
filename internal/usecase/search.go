// Package usecase orchestrates the fare discovery pipeline: admission,
// cache lookup, destination discovery, pricing fan-out, ranking, upgrade
// analysis, and best-effort enrichment (deal scores, airline names).
package usecase

import (
	"context"
	"time"

	"github.com/farescout/fare-discovery-engine/internal/cache"
	"github.com/farescout/fare-discovery-engine/internal/domain"
	"github.com/farescout/fare-discovery-engine/internal/infrastructure/logger"
	"github.com/farescout/fare-discovery-engine/internal/infrastructure/timeutil"
	"github.com/farescout/fare-discovery-engine/internal/ratelimit"
)

// Default pipeline tuning values.
const (
	DefaultGlobalTimeout   = 45 * time.Second
	DefaultUpstreamTimeout = 10 * time.Second
	DefaultMaxConcurrent   = 8

	// offersPerPair caps offers returned per pricing call.
	offersPerPair = 5

	// offersPerFlexJob caps offers per flexible-date probe.
	offersPerFlexJob = 3
)

// SearchOptions carries per-request knobs that are not part of the cache
// identity, currently just post-pricing filters.
type SearchOptions struct {
	// Filters restrict the priced offers; nil means no filtering.
	Filters *domain.FilterOptions
}

// FareSearchUseCase defines the search operations exposed to the HTTP layer.
type FareSearchUseCase interface {
	// Search runs the full anywhere-search pipeline for one identity.
	Search(ctx context.Context, req domain.SearchRequest, opts SearchOptions, id ratelimit.Identity) (*domain.SearchResult, error)

	// SearchFlexible probes sampled departure dates across a month to find
	// the cheapest time to fly to each requested destination.
	SearchFlexible(ctx context.Context, req domain.FlexibleSearchRequest, id ratelimit.Identity) (*domain.FlexibleSearchResult, error)
}

// Config contains the tuning options for the use case.
type Config struct {
	// GlobalTimeout bounds one whole search.
	GlobalTimeout time.Duration

	// UpstreamTimeout bounds each individual upstream call.
	UpstreamTimeout time.Duration

	// MaxConcurrent caps the pricing fan-out worker pool.
	MaxConcurrent int

	// Defaults fills unset request fields before validation.
	Defaults domain.SearchDefaults
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		GlobalTimeout:   DefaultGlobalTimeout,
		UpstreamTimeout: DefaultUpstreamTimeout,
		MaxConcurrent:   DefaultMaxConcurrent,
	}
}

// fareSearchUseCase implements FareSearchUseCase.
type fareSearchUseCase struct {
	source   domain.FareSource
	gate     *ratelimit.Gate
	cache    cache.ResultCache
	clock    timeutil.Clock
	log      *logger.Logger
	airlines *airlineDirectory
	cfg      Config
}

// NewFareSearchUseCase creates the search orchestrator. If config is nil,
// defaults are used for any unset tuning value.
func NewFareSearchUseCase(
	source domain.FareSource,
	gate *ratelimit.Gate,
	resultCache cache.ResultCache,
	clock timeutil.Clock,
	log *logger.Logger,
	config *Config,
) FareSearchUseCase {
	cfg := DefaultConfig()
	if config != nil {
		if config.GlobalTimeout > 0 {
			cfg.GlobalTimeout = config.GlobalTimeout
		}
		if config.UpstreamTimeout > 0 {
			cfg.UpstreamTimeout = config.UpstreamTimeout
		}
		if config.MaxConcurrent > 0 {
			cfg.MaxConcurrent = config.MaxConcurrent
		}
		cfg.Defaults = config.Defaults
	}

	if resultCache == nil {
		resultCache = cache.NewNoOpCache()
	}
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}

	return &fareSearchUseCase{
		source:   source,
		gate:     gate,
		cache:    resultCache,
		clock:    clock,
		log:      log,
		airlines: newAirlineDirectory(),
		cfg:      cfg,
	}
}

// Search implements FareSearchUseCase.Search.
func (uc *fareSearchUseCase) Search(ctx context.Context, req domain.SearchRequest, opts SearchOptions, id ratelimit.Identity) (*domain.SearchResult, error) {
	startTime := time.Now()

	req.ApplyDefaults(uc.clock.Now(), uc.cfg.Defaults)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Admission runs before any upstream or cache activity: cached searches
	// still count against the per-identity daily ceilings.
	if err := uc.gate.AdmitSearch(id); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.GlobalTimeout)
	defer cancel()

	// Cached entries hold the raw priced offers; ranking and filtering are
	// pure, so they re-run on every hit and per-request filters never leak
	// into the shared cache entry.
	if cached, ok := uc.cache.GetSearch(ctx, req); ok {
		results := rankAll(cached.Results, opts.Filters)
		return &domain.SearchResult{
			Request:      req,
			Results:      results,
			Upgrades:     AnalyzeUpgrade(results),
			Deals:        cached.Deals,
			AirlineNames: cached.AirlineNames,
			Metadata: domain.SearchMetadata{
				CandidatesFound: len(results.Destinations()),
				SearchTimeMs:    time.Since(startTime).Milliseconds(),
				CacheHit:        true,
			},
		}, nil
	}

	candidates, discoveryCalls, err := uc.discoverCandidates(ctx, req)
	if err != nil {
		return nil, err
	}

	upstreamCalls := discoveryCalls
	result := &domain.SearchResult{
		Request: req,
		Results: domain.CabinResults{},
		Metadata: domain.SearchMetadata{
			CandidatesFound: len(candidates),
		},
	}

	if len(candidates) == 0 {
		result.Metadata.UpstreamCalls = upstreamCalls
		result.Metadata.SearchTimeMs = time.Since(startTime).Milliseconds()
		return result, nil
	}

	pairCount := len(candidates) * len(req.Cabins)
	if err := uc.gate.ReserveCalls(pairCount); err != nil {
		return nil, err
	}
	upstreamCalls += pairCount

	priced := uc.pricePairs(ctx, req, candidates)
	if priced.totalOffers == 0 && priced.firstRejection != nil {
		return nil, priced.firstRejection
	}

	raw := domain.CabinResults{}
	for _, cabin := range req.Cabins {
		raw[cabin] = priced.offersByCabin[cabin]
	}
	results := rankAll(raw, opts.Filters)

	deals, dealCalls := uc.dealScores(ctx, req, results)
	upstreamCalls += dealCalls

	airlineNames, airlineCalls := uc.airlines.resolve(ctx, uc, results.CarrierCodes())
	upstreamCalls += airlineCalls

	result.Results = results
	result.Upgrades = AnalyzeUpgrade(results)
	result.Deals = deals
	result.AirlineNames = airlineNames
	result.Metadata.PairsPriced = priced.pairsPriced
	result.Metadata.PairsFailed = priced.pairsFailed
	result.Metadata.UpstreamCalls = upstreamCalls
	result.Metadata.SearchTimeMs = time.Since(startTime).Milliseconds()

	if err := uc.cache.SetSearch(ctx, req, &domain.CachedSearch{
		Results:      raw,
		Deals:        deals,
		AirlineNames: airlineNames,
	}); err != nil {
		uc.log.Warn().Err(err).Msg("failed to store search result in cache")
	}

	return result, nil
}

// callCtx derives the per-upstream-call timeout context.
func (uc *fareSearchUseCase) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, uc.cfg.UpstreamTimeout)
}

// Ensure fareSearchUseCase implements FareSearchUseCase at compile time.
var _ FareSearchUseCase = (*fareSearchUseCase)(nil)
