// Package cache stores resolution results in redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xentee/skinticket/internal/domain/model"
	"github.com/xentee/skinticket/internal/domain/ranking"
	"github.com/xentee/skinticket/pkg/logger"
	"github.com/xentee/skinticket/pkg/metrics"
)

// KeyPrefix namespaces every key written by this package.
const KeyPrefix = "skinticket:resolve:"

// Lookup results for metrics.
const (
	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultError = "error"
)

// Commander is the subset of the redis client the cache needs.
type Commander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Redis caches candidate lists. Every redis failure is treated as a miss.
type Redis struct {
	client Commander
	ttl    time.Duration
	logger logger.Logger
}

// Option configures Redis.
type Option func(*Redis)

// WithTTL sets how long entries live.
func WithTTL(d time.Duration) Option {
	return func(r *Redis) {
		if d > 0 {
			r.ttl = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Redis) {
		if l != nil {
			r.logger = l
		}
	}
}

// New wraps an existing client.
func New(client Commander, opts ...Option) *Redis {
	r := &Redis{
		client: client,
		ttl:    10 * time.Minute,
		logger: logger.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dial creates a go-redis client for addr.
func Dial(addr, password string, db int, opts ...Option) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
	return New(client, opts...)
}

// Key maps a query to its cache key. Queries that differ only in case or
// in runs of whitespace share an entry; anything that changes the upstream
// URL gets its own.
func Key(query string) string {
	return KeyPrefix + ranking.Normalize(query)
}

// Get returns the cached candidates for query.
func (r *Redis) Get(ctx context.Context, query string) ([]model.Candidate, bool) {
	raw, err := r.client.Get(ctx, Key(query)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheLookup(ResultMiss)
		return nil, false
	}
	if err != nil {
		metrics.RecordCacheLookup(ResultError)
		metrics.RecordErrorByComponent("cache", "get")
		r.logger.Warn(ctx, "cache read failed", logger.String("query", query), logger.Error(err))
		return nil, false
	}

	var out []model.Candidate
	if err := json.Unmarshal(raw, &out); err != nil {
		metrics.RecordCacheLookup(ResultError)
		r.logger.Warn(ctx, "cache entry corrupt", logger.String("query", query), logger.Error(err))
		return nil, false
	}
	metrics.RecordCacheLookup(ResultHit)
	return out, true
}

// Set stores a non-empty candidate list.
func (r *Redis) Set(ctx context.Context, query string, candidates []model.Candidate) {
	if len(candidates) == 0 {
		return
	}
	raw, err := json.Marshal(candidates)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, Key(query), raw, r.ttl).Err(); err != nil {
		metrics.RecordErrorByComponent("cache", "set")
		r.logger.Warn(ctx, "cache write failed", logger.String("query", query), logger.Error(err))
	}
}
