// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brisingire/gastronomie-verzeichnis/internal/database"
	"github.com/brisingire/gastronomie-verzeichnis/internal/models"
	"github.com/brisingire/gastronomie-verzeichnis/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// RestaurantOption customizes a test restaurant.
type RestaurantOption func(*models.Restaurant)

// WithRating sets the rating.
func WithRating(rating float64) RestaurantOption {
	return func(r *models.Restaurant) {
		r.Rating = sql.NullFloat64{Float64: rating, Valid: true}
	}
}

// WithCity sets the city.
func WithCity(city string) RestaurantOption {
	return func(r *models.Restaurant) { r.City = city }
}

// WithName sets the name.
func WithName(name string) RestaurantOption {
	return func(r *models.Restaurant) { r.Name = name }
}

// WithCode sets the verification code.
func WithCode(code string) RestaurantOption {
	return func(r *models.Restaurant) { r.VerificationCode = code }
}

// WithDescription sets the description.
func WithDescription(desc string) RestaurantOption {
	return func(r *models.Restaurant) { r.Description = desc }
}

// NewTestRestaurant creates an unverified test restaurant with code
// "GV-1234" in Heidenheim.
func NewTestRestaurant(t *testing.T, repo *repository.Repository, slug string, opts ...RestaurantOption) *models.Restaurant {
	t.Helper()
	rest := &models.Restaurant{
		Slug:             slug,
		Name:             "Restaurant " + slug,
		Address:          "Talhof 1, 89522 Heidenheim",
		City:             "Heidenheim",
		Rating:           sql.NullFloat64{Float64: 4.5, Valid: true},
		Description:      "Gutbürgerliche Küche",
		VerificationCode: "GV-1234",
	}
	for _, opt := range opts {
		opt(rest)
	}
	require.NoError(t, repo.UpsertRestaurant(context.Background(), rest))
	return rest
}

// MarkVerified flips a test restaurant to verified.
func MarkVerified(t *testing.T, db *sqlx.DB, slug string) {
	t.Helper()
	_, err := db.Exec("UPDATE restaurants SET verified = 1 WHERE slug = ?", slug)
	require.NoError(t, err)
}

// NewRequest creates a JSON request for handler tests.
func NewRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}
