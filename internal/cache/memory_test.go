package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farescout/fare-discovery-engine/internal/domain"
	"github.com/farescout/fare-discovery-engine/internal/infrastructure/timeutil"
)

func testRequest(origin string) domain.SearchRequest {
	return domain.SearchRequest{
		Origin:        origin,
		DepartureDate: "2026-10-15",
		Cabins:        []domain.CabinClass{domain.CabinEconomy, domain.CabinBusiness},
		Adults:        1,
		Currency:      "CAD",
		TopN:          10,
	}
}

func testValue(dest string) *domain.CachedSearch {
	return &domain.CachedSearch{
		Results: domain.CabinResults{
			domain.CabinEconomy: {{Destination: dest, Price: domain.PriceInfo{Amount: 800, Currency: "CAD"}}},
		},
	}
}

func newTestCache(ttl time.Duration, maxEntries int) (*MemoryCache, *timeutil.MockClock) {
	clock := timeutil.NewMockClock(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
	return NewMemoryCache(MemoryConfig{TTL: ttl, MaxEntries: maxEntries}, clock), clock
}

func TestMemoryCache_HitWithinTTL(t *testing.T) {
	c, clock := newTestCache(30*time.Minute, 10)
	ctx := context.Background()
	req := testRequest("YVR")

	_, ok := c.GetSearch(ctx, req)
	assert.False(t, ok, "empty cache misses")

	require.NoError(t, c.SetSearch(ctx, req, testValue("NRT")))

	clock.Advance(29 * time.Minute)
	got, ok := c.GetSearch(ctx, req)
	require.True(t, ok)
	assert.Equal(t, "NRT", got.Results[domain.CabinEconomy][0].Destination)
}

func TestMemoryCache_StaleEntryEvictedOnLookup(t *testing.T) {
	c, clock := newTestCache(30*time.Minute, 10)
	ctx := context.Background()
	req := testRequest("YVR")

	require.NoError(t, c.SetSearch(ctx, req, testValue("NRT")))

	clock.Advance(30 * time.Minute)
	_, ok := c.GetSearch(ctx, req)
	assert.False(t, ok, "entry at TTL boundary is stale")
	assert.Zero(t, c.Len(), "stale entry is evicted by the lookup")
}

func TestMemoryCache_LRUEviction(t *testing.T) {
	c, _ := newTestCache(time.Hour, 2)
	ctx := context.Background()

	first := testRequest("YVR")
	second := testRequest("SEA")
	third := testRequest("LAX")

	require.NoError(t, c.SetSearch(ctx, first, testValue("NRT")))
	require.NoError(t, c.SetSearch(ctx, second, testValue("LHR")))

	// Touch the first entry so the second becomes least recently used.
	_, ok := c.GetSearch(ctx, first)
	require.True(t, ok)

	require.NoError(t, c.SetSearch(ctx, third, testValue("SIN")))
	assert.Equal(t, 2, c.Len())

	_, ok = c.GetSearch(ctx, second)
	assert.False(t, ok, "least recently used entry was evicted")
	_, ok = c.GetSearch(ctx, first)
	assert.True(t, ok)
	_, ok = c.GetSearch(ctx, third)
	assert.True(t, ok)
}

func TestMemoryCache_FlexibleEntries(t *testing.T) {
	c, _ := newTestCache(time.Hour, 10)
	ctx := context.Background()
	req := domain.FlexibleSearchRequest{
		Origin:         "YVR",
		Month:          "2026-11",
		TripLengthDays: 7,
		Destinations:   []string{"NRT"},
		Cabins:         []domain.CabinClass{domain.CabinBusiness},
		Adults:         1,
		Currency:       "CAD",
	}

	require.NoError(t, c.SetFlexible(ctx, req, &domain.CachedFlexible{SampleDates: []string{"2026-11-01"}}))

	got, ok := c.GetFlexible(ctx, req)
	require.True(t, ok)
	assert.Equal(t, []string{"2026-11-01"}, got.SampleDates)
}

func TestSearchKey_Normalization(t *testing.T) {
	base := testRequest("YVR")

	reordered := testRequest("YVR")
	reordered.Cabins = []domain.CabinClass{domain.CabinBusiness, domain.CabinEconomy}
	assert.Equal(t, SearchKey(base), SearchKey(reordered), "cabin order does not change the key")

	other := testRequest("YVR")
	other.TopN = 5
	assert.NotEqual(t, SearchKey(base), SearchKey(other), "different parameters get different keys")

	assert.NotEqual(t, SearchKey(base), SearchKey(testRequest("SEA")))
}
