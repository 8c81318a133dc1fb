// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package directory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/brisingire/gastronomie-verzeichnis/internal/models"
	"github.com/brisingire/gastronomie-verzeichnis/internal/repository"
	"github.com/brisingire/gastronomie-verzeichnis/internal/services/cache"
	"github.com/brisingire/gastronomie-verzeichnis/internal/services/directory"
	"github.com/brisingire/gastronomie-verzeichnis/internal/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (*cache.SuggestionCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	c, err := cache.New(rdb, time.Minute)
	require.NoError(t, err)
	return c, mr
}

func TestSearch(t *testing.T) {
	db, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	testutil.NewTestRestaurant(t, repo, "zur-linde", testutil.WithRating(4.2))
	testutil.NewTestRestaurant(t, repo, "sonne", testutil.WithRating(4.9))
	testutil.NewTestRestaurant(t, repo, "adler", testutil.WithCity("Ulm"))
	testutil.MarkVerified(t, db, "zur-linde")

	svc := directory.New(repo, nil)

	got, err := svc.Search(ctx, "heiden", "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "zur-linde", got[0].Slug, "verified first")
	assert.Equal(t, "sonne", got[1].Slug)

	got, err = svc.Search(ctx, "", "ulm")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "adler", got[0].Slug)

	got, err = svc.Search(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRestaurant_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := directory.New(repo, nil)

	_, err := svc.Restaurant(context.Background(), "unbekannt")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSuggest(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	testutil.NewTestRestaurant(t, repo, "zur-linde", testutil.WithName("Zur Linde"))
	testutil.NewTestRestaurant(t, repo, "lindenhof", testutil.WithName("Lindenhof"), testutil.WithCity("Lindau"))

	svc := directory.New(repo, nil)

	got, err := svc.Suggest(ctx, "lind")
	require.NoError(t, err)

	assert.Equal(t, []models.Suggestion{
		{Label: "Lindenhof (Lindau)", Type: models.SuggestionRestaurant, Value: "lindenhof"},
		{Label: "Zur Linde (Heidenheim)", Type: models.SuggestionRestaurant, Value: "zur-linde"},
		{Label: "Lindau", Type: models.SuggestionCity, Value: "Lindau"},
	}, got)
}

func TestSuggest_EmptyQuery(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := directory.New(repo, nil)

	got, err := svc.Suggest(context.Background(), "   ")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSuggest_Limits(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	for i := range 12 {
		testutil.NewTestRestaurant(t, repo, fmt.Sprintf("haus-%02d", i),
			testutil.WithName(fmt.Sprintf("Haus %02d", i)),
			testutil.WithCity(fmt.Sprintf("Hausen %02d", i)))
	}

	svc := directory.New(repo, nil)
	got, err := svc.Suggest(ctx, "haus")
	require.NoError(t, err)

	var restaurants, cities int
	for _, s := range got {
		switch s.Type {
		case models.SuggestionRestaurant:
			restaurants++
		case models.SuggestionCity:
			cities++
		}
	}
	assert.Equal(t, directory.RestaurantSuggestions, restaurants)
	assert.Equal(t, directory.CitySuggestions, cities)
}

func TestSuggest_Cached(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	testutil.NewTestRestaurant(t, repo, "zur-linde", testutil.WithName("Zur Linde"))

	c, mr := newCache(t)
	svc := directory.New(repo, c)

	first, err := svc.Suggest(ctx, "Linde")
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.Key("Linde")))

	// a new record is invisible until the cache is invalidated
	testutil.NewTestRestaurant(t, repo, "lindenhof", testutil.WithName("Lindenhof"))
	second, err := svc.Suggest(ctx, "linde")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	svc.Invalidate(ctx)
	third, err := svc.Suggest(ctx, "linde")
	require.NoError(t, err)
	assert.Len(t, third, 2)
}

func TestSuggest_CacheDown(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	testutil.NewTestRestaurant(t, repo, "zur-linde", testutil.WithName("Zur Linde"))

	c, mr := newCache(t)
	mr.Close()
	svc := directory.New(repo, c)

	got, err := svc.Suggest(context.Background(), "linde")

	require.NoError(t, err)
	assert.NotEmpty(t, got)
}
