// Package cache keeps computed daily summaries in Redis.
//
// Each calendar date has a generation token. Summaries are stored under the
// token current when they were looked up, and check-in activity on a date
// replaces its token, so stale summaries are never read again and simply
// expire.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"fieldtrack/internal/reporting/models"
	"fieldtrack/pkg/platform/sentinel"
)

const (
	keyPrefix        = "fieldtrack:summary:"
	generationPrefix = "fieldtrack:summary-gen:"
	defaultTTL       = 5 * time.Minute
)

// RedisSummaryCache is a Redis-backed daily summary cache.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type Option func(*RedisSummaryCache)

// WithTTL sets how long a summary stays cached.
func WithTTL(ttl time.Duration) Option {
	return func(c *RedisSummaryCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func NewRedis(client *redis.Client, opts ...Option) *RedisSummaryCache {
	c := &RedisSummaryCache{client: client, ttl: defaultTTL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup returns the cached summary for key, or nil on a miss, together with
// the date's current generation to pass back to Store.
func (c *RedisSummaryCache) Lookup(ctx context.Context, key models.SummaryKey) (*models.DailySummary, string, error) {
	generation, err := c.client.Get(ctx, generationPrefix+key.Date).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, "", unavailable("read generation", err)
	}

	raw, err := c.client.Get(ctx, summaryKey(key, generation)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, generation, nil
	}
	if err != nil {
		return nil, "", unavailable("read summary", err)
	}

	var summary models.DailySummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, generation, fmt.Errorf("decode cached summary: %w", err)
	}
	return &summary, generation, nil
}

// Store caches summary under the generation returned by Lookup.
func (c *RedisSummaryCache) Store(ctx context.Context, key models.SummaryKey, generation string, summary *models.DailySummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := c.client.Set(ctx, summaryKey(key, generation), raw, c.ttl).Err(); err != nil {
		return unavailable("write summary", err)
	}
	return nil
}

// SessionChanged starts a new generation for date. The generation key
// outlives every summary stored under the previous one.
func (c *RedisSummaryCache) SessionChanged(ctx context.Context, _ int64, date string) error {
	if err := c.client.Set(ctx, generationPrefix+date, uuid.NewString(), 2*c.ttl).Err(); err != nil {
		return unavailable("bump generation", err)
	}
	return nil
}

func summaryKey(key models.SummaryKey, generation string) string {
	employee := "all"
	if key.EmployeeID != nil {
		employee = strconv.FormatInt(*key.EmployeeID, 10)
	}
	return fmt.Sprintf("%s%s:%s:%d:%s", keyPrefix, key.Date, generation, key.ManagerID, employee)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("summary cache %s: %w: %w", op, sentinel.ErrUnavailable, err)
}
