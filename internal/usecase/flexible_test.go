package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farescout/fare-discovery-engine/internal/domain"
	"github.com/farescout/fare-discovery-engine/test/mock"
)

func flexRequest() domain.FlexibleSearchRequest {
	return domain.FlexibleSearchRequest{
		Origin:         "YVR",
		Month:          "2026-10",
		TripLengthDays: 7,
		Destinations:   []string{"NRT", "LHR"},
		Cabins:         []domain.CabinClass{domain.CabinEconomy},
	}
}

func TestSearchFlexibleFindsCheapestDate(t *testing.T) {
	// Prices vary by departure date; the 15th is the cheapest probe.
	pricesByDate := map[string]float64{
		"2026-10-01": 900,
		"2026-10-08": 750,
		"2026-10-15": 600,
		"2026-10-22": 820,
	}
	source := mock.NewFareSource().WithOffersFunc(func(query domain.OffersQuery) ([]domain.FlightOffer, error) {
		price := pricesByDate[query.DepartureDate]
		if query.Destination == "LHR" {
			price += 100
		}
		return []domain.FlightOffer{mock.SampleOffer(query.Destination, query.Cabin, price)}, nil
	})
	p := newTestPipeline(t, source, defaultLimits())

	result, err := p.uc.SearchFlexible(context.Background(), flexRequest(), testIdentity)

	require.NoError(t, err)

	// 1 cabin x 2 destinations x 4 sampled dates.
	assert.Equal(t, 8, source.CallCount("SearchOffers"))
	assert.Equal(t, []string{"2026-10-01", "2026-10-08", "2026-10-15", "2026-10-22"}, result.SampleDates)

	fares := result.Fares[domain.CabinEconomy]
	require.Len(t, fares, 2)

	// Sorted ascending by best price, so NRT (600) comes before LHR (700).
	assert.Equal(t, "NRT", fares[0].Destination)
	assert.Equal(t, "2026-10-15", fares[0].BestDate)
	assert.Equal(t, 600.0, fares[0].Offer.Price.Amount)
	assert.Equal(t, 900.0, fares[0].MaxPriceFound)
	assert.Equal(t, 300.0, fares[0].Savings)
	assert.Equal(t, 4, fares[0].DatesChecked)

	assert.Equal(t, "LHR", fares[1].Destination)
	assert.Equal(t, 700.0, fares[1].Offer.Price.Amount)
}

func TestSearchFlexibleReturnDateFollowsTripLength(t *testing.T) {
	var seen []domain.OffersQuery
	source := mock.NewFareSource().WithOffersFunc(func(query domain.OffersQuery) ([]domain.FlightOffer, error) {
		seen = append(seen, query)
		return nil, nil
	})
	p := newTestPipeline(t, source, defaultLimits())

	req := flexRequest()
	req.Destinations = []string{"NRT"}
	_, err := p.uc.SearchFlexible(context.Background(), req, testIdentity)

	require.NoError(t, err)
	require.NotEmpty(t, seen)
	for _, q := range seen {
		switch q.DepartureDate {
		case "2026-10-01":
			assert.Equal(t, "2026-10-08", q.ReturnDate)
		case "2026-10-15":
			assert.Equal(t, "2026-10-22", q.ReturnDate)
		}
		assert.Equal(t, 3, q.MaxResults)
	}
}

func TestSearchFlexibleMidMonthSkipsPastDates(t *testing.T) {
	source := mock.NewFareSource()
	p := newTestPipeline(t, source, defaultLimits())
	p.clock.Set(mustParseTime(t, "2026-10-10T09:00:00Z"))

	req := flexRequest()
	req.Destinations = []string{"NRT"}
	result, err := p.uc.SearchFlexible(context.Background(), req, testIdentity)

	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-15", "2026-10-22"}, result.SampleDates)
	assert.Equal(t, 2, source.CallCount("SearchOffers"))
}

func TestSearchFlexibleMonthlyQuotaDenies(t *testing.T) {
	source := mock.NewFareSource()
	limits := defaultLimits()
	limits.MonthlyCallLimit = 5
	p := newTestPipeline(t, source, limits)

	_, err := p.uc.SearchFlexible(context.Background(), flexRequest(), testIdentity)

	require.Error(t, err)
	var rlErr *domain.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, domain.ScopeMonthly, rlErr.Scope)
	assert.Zero(t, source.CallCount("SearchOffers"))
}

func TestSearchFlexibleCacheHit(t *testing.T) {
	source := mock.NewFareSource()
	p := newTestPipeline(t, source, defaultLimits())

	ctx := context.Background()
	first, err := p.uc.SearchFlexible(ctx, flexRequest(), testIdentity)
	require.NoError(t, err)
	callsAfterFirst := source.TotalCalls()

	second, err := p.uc.SearchFlexible(ctx, flexRequest(), testIdentity)
	require.NoError(t, err)

	assert.True(t, second.Metadata.CacheHit)
	assert.Equal(t, callsAfterFirst, source.TotalCalls())
	assert.Equal(t, first.Fares, second.Fares)
}

func TestSearchFlexiblePastMonthRejected(t *testing.T) {
	p := newTestPipeline(t, mock.NewFareSource(), defaultLimits())

	req := flexRequest()
	req.Month = "2026-08"
	_, err := p.uc.SearchFlexible(context.Background(), req, testIdentity)

	require.Error(t, err)
	assert.True(t, domain.IsInvalidRequest(err))
}

func mustParseTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestSearchFlexibleAdmissionRuns(t *testing.T) {
	limits := defaultLimits()
	limits.SessionDailyLimit = 1
	p := newTestPipeline(t, mock.NewFareSource(), limits)

	ctx := context.Background()
	_, err := p.uc.SearchFlexible(ctx, flexRequest(), testIdentity)
	require.NoError(t, err)

	_, err = p.uc.SearchFlexible(ctx, flexRequest(), testIdentity)
	require.Error(t, err)
	assert.True(t, domain.IsRateLimitExceeded(err))
}
