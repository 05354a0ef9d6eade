// Package cache memoizes ranked match results in redis. The UI re-runs the
// same batch on every filter toggle, so a short TTL cache absorbs most of the
// repeat work.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/redis/go-redis/v9"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

const keyPrefix = "fern:match:"

// Config contains the redis connection settings.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Cache stores ranked entries keyed by input fingerprint.
type Cache struct {
	client *redis.Client
	logger ectologger.Logger
}

// New connects to redis and verifies the connection.
func New(ctx context.Context, config Config, logger ectologger.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewWithClient(client, logger), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, logger ectologger.Logger) *Cache {
	return &Cache{
		client: client,
		logger: logger,
	}
}

// GetRanked returns the cached entries for a fingerprint. Any miss,
// deserialization failure, or redis error reads as a miss; the caller
// recomputes and the cache never blocks a match.
func (c *Cache) GetRanked(ctx context.Context, key string) ([]models.RankedEntry, bool) {
	ctx, span := tracing.StartSpan(ctx, "cache.Cache.GetRanked")
	defer span.End()

	payload, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithContext(ctx).WithError(err).Warn("Failed to read ranked result from cache")
		}
		return nil, false
	}

	var entries []models.RankedEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		c.logger.WithContext(ctx).WithError(err).Warn("Failed to decode cached ranked result")
		return nil, false
	}
	return entries, true
}

// SetRanked stores entries under a fingerprint with the given TTL. Failures
// are logged and swallowed.
func (c *Cache) SetRanked(ctx context.Context, key string, entries []models.RankedEntry, ttl time.Duration) {
	ctx, span := tracing.StartSpan(ctx, "cache.Cache.SetRanked")
	defer span.End()

	payload, err := json.Marshal(entries)
	if err != nil {
		c.logger.WithContext(ctx).WithError(err).Warn("Failed to encode ranked result for cache")
		return
	}

	if err := c.client.Set(ctx, keyPrefix+key, payload, ttl).Err(); err != nil {
		c.logger.WithContext(ctx).WithError(err).Warn("Failed to write ranked result to cache")
	}
}

// Ping checks the redis connection for health reporting.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
