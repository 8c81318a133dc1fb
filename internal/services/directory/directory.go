// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

// Package directory answers listing and autocomplete queries.
package directory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/brisingire/gastronomie-verzeichnis/internal/metrics"
	"github.com/brisingire/gastronomie-verzeichnis/internal/models"
	"github.com/samber/lo"
)

// Suggestion limits.
const (
	RestaurantSuggestions = 5
	CitySuggestions       = 10
)

// Store is the persistence needed by the directory.
type Store interface {
	GetRestaurantBySlug(ctx context.Context, slug string) (*models.Restaurant, error)
	SearchRestaurants(ctx context.Context, city, term string) ([]models.Restaurant, error)
	SuggestRestaurants(ctx context.Context, term string, limit int) ([]models.Restaurant, error)
	SuggestCities(ctx context.Context, prefix string, limit int) ([]string, error)
}

// Cache stores suggestion lists. Implementations must accept being called on
// a nil receiver when caching is disabled.
type Cache interface {
	Get(ctx context.Context, query string) ([]models.Suggestion, bool, error)
	Set(ctx context.Context, query string, suggestions []models.Suggestion) error
	Invalidate(ctx context.Context) error
}

// Service is the read side of the directory.
type Service struct {
	store Store
	cache Cache
}

// New creates a Service. cache may be nil.
func New(store Store, cache Cache) *Service {
	return &Service{store: store, cache: cache}
}

// Restaurant returns the record for slug.
func (s *Service) Restaurant(ctx context.Context, slug string) (*models.Restaurant, error) {
	return s.store.GetRestaurantBySlug(ctx, slug)
}

// Search lists restaurants. A non-empty city filters by city substring;
// otherwise term matches name or city. Verified restaurants come first,
// then by rating.
func (s *Service) Search(ctx context.Context, city, term string) ([]models.Restaurant, error) {
	restaurants, err := s.store.SearchRestaurants(ctx, city, term)
	if err != nil {
		return nil, fmt.Errorf("searching restaurants: %w", err)
	}
	return restaurants, nil
}

// Suggest returns up to five restaurant and ten city suggestions for query.
func (s *Service) Suggest(ctx context.Context, query string) ([]models.Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Suggestion{}, nil
	}

	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, query)
		switch {
		case err != nil:
			metrics.SuggestCacheTotal.WithLabelValues("error").Inc()
			slog.WarnContext(ctx, "suggest_cache_read_failed", "error", err)
		case found:
			metrics.SuggestCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.SuggestCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	restaurants, err := s.store.SuggestRestaurants(ctx, query, RestaurantSuggestions)
	if err != nil {
		return nil, fmt.Errorf("suggesting restaurants: %w", err)
	}
	cities, err := s.store.SuggestCities(ctx, query, CitySuggestions)
	if err != nil {
		return nil, fmt.Errorf("suggesting cities: %w", err)
	}

	suggestions := make([]models.Suggestion, 0, len(restaurants)+len(cities))
	suggestions = append(suggestions, lo.Map(restaurants, func(r models.Restaurant, _ int) models.Suggestion {
		return models.Suggestion{
			Label: fmt.Sprintf("%s (%s)", r.Name, r.City),
			Type:  models.SuggestionRestaurant,
			Value: r.Slug,
		}
	})...)
	suggestions = append(suggestions, lo.Map(cities, func(c string, _ int) models.Suggestion {
		return models.Suggestion{Label: c, Type: models.SuggestionCity, Value: c}
	})...)

	if s.cache != nil {
		if err := s.cache.Set(ctx, query, suggestions); err != nil {
			slog.WarnContext(ctx, "suggest_cache_write_failed", "error", err)
		}
	}

	return suggestions, nil
}

// Invalidate drops cached suggestions after the data set changed.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.WarnContext(ctx, "suggest_cache_invalidate_failed", "error", err)
	}
}
