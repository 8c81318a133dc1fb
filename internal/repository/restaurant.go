// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"strings"
	"time"

	"github.com/brisingire/gastronomie-verzeichnis/internal/models"
	"github.com/samber/lo"
)

const restaurantColumns = `id, slug, name, address, city, rating, description, verified,
	verification_code, report_url, reviewer_notes, verified_at, unlock_token,
	unlock_claimed_at, created_at, updated_at`

// GetRestaurantBySlug retrieves a restaurant by its slug.
func (r *Repository) GetRestaurantBySlug(ctx context.Context, slug string) (*models.Restaurant, error) {
	var rest models.Restaurant
	query := r.q(`SELECT ` + restaurantColumns + ` FROM restaurants WHERE slug = ?`)
	if err := r.db.GetContext(ctx, &rest, query, slug); err != nil {
		return nil, wrapError(err)
	}
	return &rest, nil
}

// SearchRestaurants lists restaurants whose city contains city or, when city
// is empty, whose city or name contains term. Verified restaurants come
// first, then higher ratings.
func (r *Repository) SearchRestaurants(ctx context.Context, city, term string) ([]models.Restaurant, error) {
	city = strings.TrimSpace(city)
	term = strings.TrimSpace(term)

	var (
		where string
		args  []any
	)
	switch {
	case city != "":
		where = `LOWER(city) LIKE ? ESCAPE '\'`
		args = []any{containsPattern(city)}
	case term != "":
		where = `LOWER(city) LIKE ? ESCAPE '\' OR LOWER(name) LIKE ? ESCAPE '\'`
		args = []any{containsPattern(term), containsPattern(term)}
	default:
		return []models.Restaurant{}, nil
	}

	query := r.q(`SELECT ` + restaurantColumns + ` FROM restaurants WHERE ` + where +
		` ORDER BY verified DESC, COALESCE(rating, 0) DESC, name`)

	restaurants := []models.Restaurant{}
	if err := r.db.SelectContext(ctx, &restaurants, query, args...); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// SuggestRestaurants returns up to limit restaurants whose name contains term.
func (r *Repository) SuggestRestaurants(ctx context.Context, term string, limit int) ([]models.Restaurant, error) {
	query := r.q(`SELECT ` + restaurantColumns + ` FROM restaurants
		WHERE LOWER(name) LIKE ? ESCAPE '\' ORDER BY name LIMIT ?`)

	restaurants := []models.Restaurant{}
	if err := r.db.SelectContext(ctx, &restaurants, query, containsPattern(term), limit); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// SuggestCities returns distinct cities starting with prefix, taken from
// the first limit matching rows in alphabetical order.
func (r *Repository) SuggestCities(ctx context.Context, prefix string, limit int) ([]string, error) {
	query := r.q(`SELECT city FROM restaurants
		WHERE LOWER(city) LIKE ? ESCAPE '\' ORDER BY city LIMIT ?`)

	var cities []string
	if err := r.db.SelectContext(ctx, &cities, query, prefixPattern(prefix), limit); err != nil {
		return nil, err
	}

	return lo.Uniq(lo.Map(cities, func(c string, _ int) string {
		return strings.TrimSpace(c)
	})), nil
}

// UpsertRestaurant inserts rest or updates the record with the same slug.
// The verification code of a verified restaurant is never replaced and the
// verified flag is never reset. rest.ID is set on return.
func (r *Repository) UpsertRestaurant(ctx context.Context, rest *models.Restaurant) error {
	now := time.Now().UTC()
	query := r.q(`INSERT INTO restaurants
		(slug, name, address, city, rating, description, verification_code, reviewer_notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (slug) DO UPDATE SET
			name = excluded.name,
			address = excluded.address,
			city = excluded.city,
			rating = excluded.rating,
			description = excluded.description,
			reviewer_notes = excluded.reviewer_notes,
			verification_code = CASE WHEN restaurants.verified
				THEN restaurants.verification_code ELSE excluded.verification_code END,
			updated_at = excluded.updated_at
		RETURNING id`)

	err := r.db.QueryRowxContext(ctx, query,
		rest.Slug, rest.Name, rest.Address, rest.City, rest.Rating, rest.Description,
		rest.VerificationCode, rest.ReviewerNotes, now, now,
	).Scan(&rest.ID)
	if err != nil {
		return err
	}

	rest.UpdatedAt = now
	return nil
}

// UpdateReportURL stores the location of the latest report image.
func (r *Repository) UpdateReportURL(ctx context.Context, slug, url string) error {
	query := r.q(`UPDATE restaurants SET report_url = ?, updated_at = ? WHERE slug = ?`)
	res, err := r.db.ExecContext(ctx, query, url, time.Now().UTC(), slug)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// ClaimUnlock marks an unverified restaurant as being unlocked by token.
// It succeeds for exactly one caller unless an earlier claim was taken
// before staleBefore.
func (r *Repository) ClaimUnlock(ctx context.Context, slug, code, token string, now, staleBefore time.Time) (bool, error) {
	query := r.q(`UPDATE restaurants SET unlock_token = ?, unlock_claimed_at = ?
		WHERE slug = ? AND verified = ? AND verification_code = ?
		AND (unlock_token IS NULL OR unlock_claimed_at < ?)`)

	res, err := r.db.ExecContext(ctx, query, token, now.Unix(), slug, false, code, staleBefore.Unix())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// CompleteUnlock marks the restaurant verified if token still holds the
// claim.
func (r *Repository) CompleteUnlock(ctx context.Context, slug, token string, now time.Time) (bool, error) {
	query := r.q(`UPDATE restaurants SET verified = ?, verified_at = ?, updated_at = ?,
		unlock_token = NULL, unlock_claimed_at = NULL
		WHERE slug = ? AND unlock_token = ?`)

	res, err := r.db.ExecContext(ctx, query, true, now.UTC(), now.UTC(), slug, token)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// ReleaseUnlock drops the claim held by token.
func (r *Repository) ReleaseUnlock(ctx context.Context, slug, token string) error {
	query := r.q(`UPDATE restaurants SET unlock_token = NULL, unlock_claimed_at = NULL
		WHERE slug = ? AND unlock_token = ?`)
	_, err := r.db.ExecContext(ctx, query, slug, token)
	return err
}
