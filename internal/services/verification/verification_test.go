// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package verification_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/brisingire/gastronomie-verzeichnis/internal/models"
	"github.com/brisingire/gastronomie-verzeichnis/internal/repository"
	"github.com/brisingire/gastronomie-verzeichnis/internal/services/verification"
	"github.com/brisingire/gastronomie-verzeichnis/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name      string
		stored    string
		submitted string
		expected  bool
	}{
		{"exact", "GV-1234", "GV-1234", true},
		{"surrounding whitespace", "GV-1234", "  GV-1234\n", true},
		{"case sensitive", "GV-1234", "gv-1234", false},
		{"inner whitespace kept", "GV-1234", "GV- 1234", false},
		{"stored side not trimmed", "GV-1234 ", "GV-1234", false},
		{"wrong code", "GV-1234", "GV-4321", false},
		{"empty stored code never matches", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, verification.Matches(tt.stored, tt.submitted))
		})
	}
}

func TestGate_CheckCode(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	testutil.NewTestRestaurant(t, repo, "zur-linde")
	gate := verification.NewGate(repo)

	ok, err := gate.CheckCode(ctx, "zur-linde", " GV-1234 ")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.CheckCode(ctx, "zur-linde", "GV-0000")
	require.NoError(t, err)
	assert.False(t, ok)

	// checking does not change state
	rest, err := repo.GetRestaurantBySlug(ctx, "zur-linde")
	require.NoError(t, err)
	assert.False(t, rest.Verified)
}

func TestGate_CheckCode_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	gate := verification.NewGate(repo)

	_, err := gate.CheckCode(context.Background(), "unbekannt", "GV-1234")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

type failingStore struct{}

func (failingStore) GetRestaurantBySlug(context.Context, string) (*models.Restaurant, error) {
	return nil, errors.New("connection refused")
}

func TestGate_CheckCode_UpstreamError(t *testing.T) {
	gate := verification.NewGate(failingStore{})

	_, err := gate.CheckCode(context.Background(), "zur-linde", "GV-1234")

	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		code, err := verification.GenerateCode()
		require.NoError(t, err)

		// XXXX-XXXX
		require.Len(t, code, 9)
		assert.Equal(t, byte('-'), code[4])
		assert.False(t, strings.ContainsAny(code, "01OI"), code)
		assert.Equal(t, strings.ToUpper(code), code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 45)
}
