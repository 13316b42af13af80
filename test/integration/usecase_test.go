package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farescout/fare-discovery-engine/internal/domain"
	"github.com/farescout/fare-discovery-engine/internal/usecase"
	"github.com/farescout/fare-discovery-engine/test/mock"
	"github.com/farescout/fare-discovery-engine/test/testutil"
)

func economyRequest() domain.SearchRequest {
	return domain.SearchRequest{
		Origin: "YVR",
		Cabins: []domain.CabinClass{domain.CabinEconomy},
	}
}

func TestSearch_FallsBackToDirectDestinations(t *testing.T) {
	source := mock.NewFareSource().
		WithDiscoverError(domain.NewUpstreamUnavailable("inspiration", 503, assert.AnError)).
		WithDirectDestinations("NRT", "SYD")
	env := NewEnv(source)

	result, err := env.UseCase.Search(context.Background(), economyRequest(), usecase.SearchOptions{}, env.Identity())

	require.NoError(t, err)
	assert.Equal(t, 2, source.CallCount("Discover"), "transient discovery failure is retried once")
	assert.Equal(t, 1, source.CallCount("DirectDestinations"))
	assert.ElementsMatch(t, []string{"NRT", "SYD"}, result.Results.Destinations())
	assert.Equal(t, 2, result.Metadata.CandidatesFound)
	assert.Equal(t, 2, result.Metadata.PairsPriced)
}

func TestSearch_FiltersAreNotBakedIntoTheCache(t *testing.T) {
	direct := mock.SampleOffer("NRT", domain.CabinEconomy, 800)
	oneStop := mock.SampleOffer("NRT", domain.CabinEconomy, 500)
	oneStop.Stops = 1

	source := mock.NewFareSource().
		WithCandidates(mock.SampleCandidates("NRT")...).
		WithOffers("NRT", domain.CabinEconomy, direct, oneStop)
	env := NewEnv(source)
	ctx := context.Background()

	filtered, err := env.UseCase.Search(ctx, economyRequest(), usecase.SearchOptions{
		Filters: &domain.FilterOptions{MaxStops: testutil.IntPtr(0)},
	}, env.Identity())
	require.NoError(t, err)
	require.Len(t, filtered.Results[domain.CabinEconomy], 1)
	assert.Equal(t, 800.0, filtered.Results[domain.CabinEconomy][0].Price.Amount)

	unfiltered, err := env.UseCase.Search(ctx, economyRequest(), usecase.SearchOptions{}, env.Identity())
	require.NoError(t, err)
	assert.True(t, unfiltered.Metadata.CacheHit)
	require.Len(t, unfiltered.Results[domain.CabinEconomy], 1)
	assert.Equal(t, 500.0, unfiltered.Results[domain.CabinEconomy][0].Price.Amount,
		"the cheaper one-stop offer must survive in the shared cache entry")
}

func TestSearch_EnrichmentSkippedWhenQuotaBarelyCovers(t *testing.T) {
	// Monthly quota of 2 covers discovery and the single pricing pair;
	// deal scoring and airline lookups are best-effort and step aside.
	source := mock.NewFareSource().
		WithCandidates(mock.SampleCandidates("NRT")...).
		WithMetrics("NRT", &domain.PriceMetrics{Median: testutil.FloatPtr(900)}).
		WithAirlineNames(map[string]string{"AC": "Air Canada"})
	env := NewEnvWithOptions(source, Options{
		Limits: mustLimits(50, 50, 2),
	})

	result, err := env.UseCase.Search(context.Background(), economyRequest(), usecase.SearchOptions{}, env.Identity())

	require.NoError(t, err)
	require.Len(t, result.Results[domain.CabinEconomy], 1)
	assert.Nil(t, result.Deals)
	assert.Empty(t, result.AirlineNames)
	assert.Equal(t, 2, result.Metadata.UpstreamCalls)
	assert.Equal(t, 0, source.CallCount("PriceMetrics"))
	assert.Equal(t, 0, source.CallCount("AirlineNames"))
}

func TestSearch_AdmissionCountsCachedSearches(t *testing.T) {
	env := NewEnvWithOptions(newTwoDestinationSource(), Options{
		Limits: mustLimits(2, 50, 5000),
	})
	ctx := context.Background()

	_, err := env.UseCase.Search(ctx, economyRequest(), usecase.SearchOptions{}, env.Identity())
	require.NoError(t, err)

	cached, err := env.UseCase.Search(ctx, economyRequest(), usecase.SearchOptions{}, env.Identity())
	require.NoError(t, err)
	assert.True(t, cached.Metadata.CacheHit)

	_, err = env.UseCase.Search(ctx, economyRequest(), usecase.SearchOptions{}, env.Identity())
	require.Error(t, err)
	assert.True(t, domain.IsRateLimitExceeded(err), "cached searches still consume daily admissions")
}

func TestSearch_InvalidRequestRejectedBeforeAdmission(t *testing.T) {
	env := NewEnvWithOptions(newTwoDestinationSource(), Options{
		Limits: mustLimits(1, 50, 5000),
	})
	ctx := context.Background()

	bad := economyRequest()
	bad.DepartureDate = "2026-13-40"
	_, err := env.UseCase.Search(ctx, bad, usecase.SearchOptions{}, env.Identity())
	require.Error(t, err)
	assert.True(t, domain.IsInvalidRequest(err))

	// The malformed request must not have burned the only admission.
	_, err = env.UseCase.Search(ctx, economyRequest(), usecase.SearchOptions{}, env.Identity())
	require.NoError(t, err)
}

func TestSearchFlexible_RejectionSurfacesWhenNothingPrices(t *testing.T) {
	source := mock.NewFareSource().
		WithOffersFunc(func(query domain.OffersQuery) ([]domain.FlightOffer, error) {
			return nil, domain.NewUpstreamRejected("offers", 400, "route not supported")
		})
	env := NewEnv(source)

	req := domain.FlexibleSearchRequest{
		Origin:         "YVR",
		Month:          "2026-10",
		TripLengthDays: 7,
		Destinations:   []string{"NRT"},
		Cabins:         []domain.CabinClass{domain.CabinEconomy},
	}
	_, err := env.UseCase.SearchFlexible(context.Background(), req, env.Identity())

	require.Error(t, err)
	assert.True(t, domain.IsUpstreamRejected(err))
}

func TestSearchFlexible_SecondRequestHitsCache(t *testing.T) {
	source := mock.NewFareSource().
		WithAirlineNames(map[string]string{"AC": "Air Canada"})
	env := NewEnv(source)
	ctx := context.Background()

	req := domain.FlexibleSearchRequest{
		Origin:         "YVR",
		Month:          "2026-10",
		TripLengthDays: 7,
		Destinations:   []string{"NRT"},
		Cabins:         []domain.CabinClass{domain.CabinEconomy},
	}

	first, err := env.UseCase.SearchFlexible(ctx, req, env.Identity())
	require.NoError(t, err)
	assert.False(t, first.Metadata.CacheHit)
	callsAfterFirst := source.TotalCalls()

	second, err := env.UseCase.SearchFlexible(ctx, req, env.Identity())
	require.NoError(t, err)
	assert.True(t, second.Metadata.CacheHit)
	assert.Equal(t, callsAfterFirst, source.TotalCalls())
	assert.Equal(t, first.Fares, second.Fares)
	assert.Equal(t, first.SampleDates, second.SampleDates)
}
