// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

// Package verification checks restaurant verification codes.
package verification

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/brisingire/gastronomie-verzeichnis/internal/models"
)

// Store looks up restaurants.
type Store interface {
	GetRestaurantBySlug(ctx context.Context, slug string) (*models.Restaurant, error)
}

// Gate validates submitted verification codes without changing state.
type Gate struct {
	store Store
}

// NewGate creates a new Gate.
func NewGate(store Store) *Gate {
	return &Gate{store: store}
}

// CheckCode reports whether code matches the stored code of slug.
// A missing restaurant yields an error wrapping repository.ErrNotFound.
func (g *Gate) CheckCode(ctx context.Context, slug, code string) (bool, error) {
	rest, err := g.store.GetRestaurantBySlug(ctx, slug)
	if err != nil {
		return false, fmt.Errorf("looking up restaurant %q: %w", slug, err)
	}
	return Matches(rest.VerificationCode, code), nil
}

// Normalize trims surrounding whitespace from a submitted code. Stored
// codes are compared as-is and are case-sensitive.
func Normalize(submitted string) string {
	return strings.TrimSpace(submitted)
}

// Matches compares a stored code with a submitted one.
func Matches(stored, submitted string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(Normalize(submitted))) == 1
}
