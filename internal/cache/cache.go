// Package cache is a thin byte cache over Redis. A Cache built without a
// client is a no-op, so callers need not care whether Redis is configured.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/baharkarakas/dormshop-backend/internal/metrics"
)

const keyPrefix = "dormshop:"

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	m   *metrics.Metrics
}

// Connect parses a redis:// URL and checks the server answers.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// New wraps rdb; rdb and m may be nil.
func New(rdb *redis.Client, ttl time.Duration, m *metrics.Metrics) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, m: m}
}

// Get returns the cached value and whether it was found.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c == nil || c.rdb == nil {
		return nil, false, nil
	}
	b, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		c.count("miss")
		return nil, false, nil
	case err != nil:
		c.count("error")
		return nil, false, err
	}
	c.count("hit")
	return b, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, val []byte) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Set(ctx, keyPrefix+key, val, c.ttl).Err()
}

func (c *Cache) count(result string) {
	if c.m != nil {
		c.m.CacheLookups.WithLabelValues(result).Inc()
	}
}
