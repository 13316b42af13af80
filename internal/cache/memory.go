package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/farescout/fare-discovery-engine/internal/domain"
	"github.com/farescout/fare-discovery-engine/internal/infrastructure/timeutil"
)

// MemoryConfig holds the in-memory cache settings.
type MemoryConfig struct {
	// TTL is how long entries stay fresh.
	TTL time.Duration

	// MaxEntries caps the store; the least-recently-used entry is evicted
	// on overflow.
	MaxEntries int
}

// memoryEntry is one cached value with its insertion time.
type memoryEntry struct {
	key        string
	value      interface{}
	insertedAt time.Time
}

// MemoryCache is a TTL+LRU in-memory ResultCache. All state is process
// local and lost on restart by design.
type MemoryCache struct {
	mu      sync.Mutex
	cfg     MemoryConfig
	clock   timeutil.Clock
	entries map[string]*list.Element
	order   *list.List // front = most recently used
}

// NewMemoryCache creates an in-memory cache.
func NewMemoryCache(cfg MemoryConfig, clock timeutil.Clock) *MemoryCache {
	return &MemoryCache{
		cfg:     cfg,
		clock:   clock,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

// get returns a fresh value for the key, evicting it if stale.
func (c *MemoryCache) get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	entry := elem.Value.(*memoryEntry)
	if c.clock.Now().Sub(entry.insertedAt) >= c.cfg.TTL {
		c.removeLocked(elem)
		return nil, false
	}

	c.order.MoveToFront(elem)
	return entry.value, true
}

// set stores a value, evicting from the LRU tail on overflow.
func (c *MemoryCache) set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.value = value
		entry.insertedAt = c.clock.Now()
		c.order.MoveToFront(elem)
		return
	}

	elem := c.order.PushFront(&memoryEntry{
		key:        key,
		value:      value,
		insertedAt: c.clock.Now(),
	})
	c.entries[key] = elem

	for c.cfg.MaxEntries > 0 && c.order.Len() > c.cfg.MaxEntries {
		c.removeLocked(c.order.Back())
	}
}

// removeLocked drops an entry. Callers must hold the mutex.
func (c *MemoryCache) removeLocked(elem *list.Element) {
	if elem == nil {
		return
	}
	entry := elem.Value.(*memoryEntry)
	delete(c.entries, entry.key)
	c.order.Remove(elem)
}

// Len returns the number of live entries, stale ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *MemoryCache) GetSearch(_ context.Context, req domain.SearchRequest) (*domain.CachedSearch, bool) {
	value, ok := c.get(SearchKey(req))
	if !ok {
		return nil, false
	}
	cached, ok := value.(*domain.CachedSearch)
	return cached, ok
}

func (c *MemoryCache) SetSearch(_ context.Context, req domain.SearchRequest, value *domain.CachedSearch) error {
	c.set(SearchKey(req), value)
	return nil
}

func (c *MemoryCache) GetFlexible(_ context.Context, req domain.FlexibleSearchRequest) (*domain.CachedFlexible, bool) {
	value, ok := c.get(FlexibleKey(req))
	if !ok {
		return nil, false
	}
	cached, ok := value.(*domain.CachedFlexible)
	return cached, ok
}

func (c *MemoryCache) SetFlexible(_ context.Context, req domain.FlexibleSearchRequest, value *domain.CachedFlexible) error {
	c.set(FlexibleKey(req), value)
	return nil
}

func (c *MemoryCache) Close() error {
	return nil
}

// Ensure MemoryCache implements ResultCache at compile time.
var _ ResultCache = (*MemoryCache)(nil)
