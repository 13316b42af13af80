package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/farescout/fare-discovery-engine/internal/domain"
)

// RedisConfig holds the Redis backend settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache is a Redis-backed ResultCache. TTL is enforced by SET expiry;
// a redis.Nil reply is a miss, not an error.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection with a ping.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client, ttl: cfg.TTL}, nil
}

// getJSON loads and unmarshals a key into dest, reporting a hit.
func (c *RedisCache) getJSON(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and transport errors both degrade to a miss.
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// setJSON marshals and stores a value under the cache TTL.
func (c *RedisCache) setJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *RedisCache) GetSearch(ctx context.Context, req domain.SearchRequest) (*domain.CachedSearch, bool) {
	var cached domain.CachedSearch
	if !c.getJSON(ctx, SearchKey(req), &cached) {
		return nil, false
	}
	return &cached, true
}

func (c *RedisCache) SetSearch(ctx context.Context, req domain.SearchRequest, value *domain.CachedSearch) error {
	return c.setJSON(ctx, SearchKey(req), value)
}

func (c *RedisCache) GetFlexible(ctx context.Context, req domain.FlexibleSearchRequest) (*domain.CachedFlexible, bool) {
	var cached domain.CachedFlexible
	if !c.getJSON(ctx, FlexibleKey(req), &cached) {
		return nil, false
	}
	return &cached, true
}

func (c *RedisCache) SetFlexible(ctx context.Context, req domain.FlexibleSearchRequest, value *domain.CachedFlexible) error {
	return c.setJSON(ctx, FlexibleKey(req), value)
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements ResultCache at compile time.
var _ ResultCache = (*RedisCache)(nil)
