// Package cache provides the short-lived result cache keyed by normalized
// query parameters. Backends: an in-memory TTL+LRU store (default), Redis,
// and a no-op for deployments that disable caching. Loss of the cache is
// a quota cost, never a correctness problem.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/farescout/fare-discovery-engine/internal/domain"
)

// ResultCache stores completed search results for their TTL.
type ResultCache interface {
	// GetSearch returns the cached result for an anywhere search, or
	// (nil, false) on a miss. Stale entries count as misses.
	GetSearch(ctx context.Context, req domain.SearchRequest) (*domain.CachedSearch, bool)

	// SetSearch stores an anywhere search result.
	SetSearch(ctx context.Context, req domain.SearchRequest, value *domain.CachedSearch) error

	// GetFlexible returns the cached result for a flexible-date search.
	GetFlexible(ctx context.Context, req domain.FlexibleSearchRequest) (*domain.CachedFlexible, bool)

	// SetFlexible stores a flexible-date search result.
	SetFlexible(ctx context.Context, req domain.FlexibleSearchRequest, value *domain.CachedFlexible) error

	// Close releases backend resources.
	Close() error
}

// SearchKey builds the canonical cache key for an anywhere search. Cabins
// and regions are sorted so logically identical requests share a key.
func SearchKey(req domain.SearchRequest) string {
	keyData := struct {
		Origin        string
		DepartureDate string
		ReturnDate    string
		Cabins        []string
		Adults        int
		Currency      string
		NonstopOnly   bool
		TopN          int
		MaxPrice      int
		Regions       []string
	}{
		Origin:        req.Origin,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Cabins:        sortedCabins(req.Cabins),
		Adults:        req.Adults,
		Currency:      req.Currency,
		NonstopOnly:   req.NonstopOnly,
		TopN:          req.TopN,
		MaxPrice:      req.MaxPrice,
		Regions:       sortedStrings(req.Regions),
	}
	return "search:" + hashKey(keyData)
}

// FlexibleKey builds the canonical cache key for a flexible-date search.
func FlexibleKey(req domain.FlexibleSearchRequest) string {
	keyData := struct {
		Origin         string
		Month          string
		TripLengthDays int
		Destinations   []string
		Cabins         []string
		Adults         int
		Currency       string
		NonstopOnly    bool
		MaxPrice       int
	}{
		Origin:         req.Origin,
		Month:          req.Month,
		TripLengthDays: req.TripLengthDays,
		Destinations:   sortedStrings(req.Destinations),
		Cabins:         sortedCabins(req.Cabins),
		Adults:         req.Adults,
		Currency:       req.Currency,
		NonstopOnly:    req.NonstopOnly,
		MaxPrice:       req.MaxPrice,
	}
	return "flex:" + hashKey(keyData)
}

func hashKey(keyData interface{}) string {
	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func sortedCabins(cabins []domain.CabinClass) []string {
	out := make([]string, len(cabins))
	for i, c := range cabins {
		out[i] = string(c)
	}
	sort.Strings(out)
	return out
}

func sortedStrings(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}
