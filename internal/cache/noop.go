package cache

import (
	"context"

	"github.com/farescout/fare-discovery-engine/internal/domain"
)

// NoOpCache disables caching: every lookup misses, every store succeeds.
type NoOpCache struct{}

// NewNoOpCache creates a disabled cache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (NoOpCache) GetSearch(context.Context, domain.SearchRequest) (*domain.CachedSearch, bool) {
	return nil, false
}

func (NoOpCache) SetSearch(context.Context, domain.SearchRequest, *domain.CachedSearch) error {
	return nil
}

func (NoOpCache) GetFlexible(context.Context, domain.FlexibleSearchRequest) (*domain.CachedFlexible, bool) {
	return nil, false
}

func (NoOpCache) SetFlexible(context.Context, domain.FlexibleSearchRequest, *domain.CachedFlexible) error {
	return nil
}

func (NoOpCache) Close() error {
	return nil
}

// Ensure NoOpCache implements ResultCache at compile time.
var _ ResultCache = (*NoOpCache)(nil)
