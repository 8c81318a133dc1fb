// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

// Package cache stores search suggestions in Redis. A nil *SuggestionCache
// is valid and caches nothing.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brisingire/gastronomie-verzeichnis/internal/models"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces all suggestion keys.
const KeyPrefix = "gastro:suggest:"

// SuggestionCache caches suggestion lists keyed by normalized query.
type SuggestionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New wraps an existing client.
func New(rdb *redis.Client, ttl time.Duration) (*SuggestionCache, error) {
	if rdb == nil {
		return nil, errors.New("redis client is nil")
	}
	return &SuggestionCache{rdb: rdb, ttl: ttl}, nil
}

// NewFromURL connects to redisURL and verifies the connection. An empty URL
// returns a nil cache.
func NewFromURL(ctx context.Context, redisURL string, ttl time.Duration) (*SuggestionCache, error) {
	if redisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close() //nolint:errcheck,gosec // ping error takes precedence
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return New(rdb, ttl)
}

// Key returns the cache key for query.
func Key(query string) string {
	return KeyPrefix + strings.ToLower(strings.TrimSpace(query))
}

// Get returns the cached suggestions for query and whether they were found.
func (c *SuggestionCache) Get(ctx context.Context, query string) ([]models.Suggestion, bool, error) {
	if c == nil {
		return nil, false, nil
	}

	raw, err := c.rdb.Get(ctx, Key(query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading suggestions: %w", err)
	}

	var suggestions []models.Suggestion
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		return nil, false, fmt.Errorf("decoding suggestions: %w", err)
	}
	return suggestions, true, nil
}

// Set stores suggestions for query with the configured TTL.
func (c *SuggestionCache) Set(ctx context.Context, query string, suggestions []models.Suggestion) error {
	if c == nil {
		return nil
	}

	raw, err := json.Marshal(suggestions)
	if err != nil {
		return fmt.Errorf("encoding suggestions: %w", err)
	}
	if err := c.rdb.Set(ctx, Key(query), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing suggestions: %w", err)
	}
	return nil
}

// Invalidate drops every cached suggestion list.
func (c *SuggestionCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}

	iter := c.rdb.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scanning suggestion keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("deleting suggestion keys: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (c *SuggestionCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
