// Package trackingcache stores parcel tracking summaries in Redis as JSON
// strings under "<prefix><tracking id>" with a fixed, finite TTL.
package trackingcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultKeyPrefix = "parceltrack:tracking:"

	// DefaultTTL applies when NewRedisTrackingCache gets a non-positive ttl.
	// Writes never invalidate entries, so every entry must expire.
	DefaultTTL = 10 * time.Second
)

// RedisTrackingCache implements ports.TrackingCache.
type RedisTrackingCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisTrackingCache connects to redisURL, which has the form
// redis://[:password@]host[:port][/database]. A ttl of 0 or less falls back
// to DefaultTTL.
func NewRedisTrackingCache(redisURL string, ttl time.Duration) (*RedisTrackingCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RedisTrackingCache{
		client: redis.NewClient(opts),
		ttl:    ttl,
		prefix: DefaultKeyPrefix,
	}, nil
}

// Put writes all summaries in one pipeline round trip.
func (c *RedisTrackingCache) Put(ctx context.Context, summaries ...ports.TrackingSummary) error {
	if len(summaries) == 0 {
		return nil
	}

	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, s := range summaries {
			payload, err := json.Marshal(s)
			if err != nil {
				return fmt.Errorf("failed to encode summary %s: %w", s.TrackingID, err)
			}
			pipe.Set(ctx, c.key(s.TrackingID), payload, c.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store %d tracking summaries: %w", len(summaries), err)
	}
	return nil
}

// Get returns ports.ErrTrackingSummaryNotCached on a miss.
func (c *RedisTrackingCache) Get(ctx context.Context, trackingID string) (ports.TrackingSummary, error) {
	payload, err := c.client.Get(ctx, c.key(trackingID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.TrackingSummary{}, fmt.Errorf("%w: %s", ports.ErrTrackingSummaryNotCached, trackingID)
	}
	if err != nil {
		return ports.TrackingSummary{}, fmt.Errorf("failed to get tracking summary %s: %w", trackingID, err)
	}

	var s ports.TrackingSummary
	if err = json.Unmarshal(payload, &s); err != nil {
		return ports.TrackingSummary{}, fmt.Errorf("failed to decode tracking summary %s: %w", trackingID, err)
	}
	return s, nil
}

// Ping checks if Redis is reachable.
func (c *RedisTrackingCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisTrackingCache) Close() error {
	return c.client.Close()
}

func (c *RedisTrackingCache) key(trackingID string) string {
	return c.prefix + trackingID
}
