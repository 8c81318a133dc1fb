// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"strings"

	"github.com/brisingire/gastronomie-verzeichnis/internal/models"
	"github.com/brisingire/gastronomie-verzeichnis/internal/services/delivery"
	"github.com/brisingire/gastronomie-verzeichnis/internal/services/directory"
	"github.com/brisingire/gastronomie-verzeichnis/internal/services/verification"
	"github.com/brisingire/gastronomie-verzeichnis/internal/sse"
	"github.com/labstack/echo/v4"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	directory *directory.Service
	gate      *verification.Gate
	delivery  *delivery.Service
	hub       *sse.Hub
}

// New creates a new Handlers instance.
func New(dir *directory.Service, gate *verification.Gate, del *delivery.Service, hub *sse.Hub) *Handlers {
	return &Handlers{directory: dir, gate: gate, delivery: del, hub: hub}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// RestaurantSummary is a listing entry.
type RestaurantSummary struct {
	Slug     string   `json:"slug"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	City     string   `json:"city"`
	Rating   *float64 `json:"rating"`
	Verified bool     `json:"verified"`
}

// RestaurantDetail is the public view of one restaurant. The verification
// code is never included.
type RestaurantDetail struct {
	RestaurantSummary
	Description   string `json:"description"`
	ReviewerNotes string `json:"reviewer_notes,omitempty"`
	ReportURL     string `json:"report_url,omitempty"`
}

func summaryOf(r *models.Restaurant) RestaurantSummary {
	s := RestaurantSummary{
		Slug:     r.Slug,
		Name:     r.Name,
		Address:  r.Address,
		City:     r.City,
		Verified: r.Verified,
	}
	if r.Rating.Valid {
		rating := r.Rating.Float64
		s.Rating = &rating
	}
	return s
}

// SearchRestaurants lists restaurants by city or search term.
func (h *Handlers) SearchRestaurants(c echo.Context) error {
	ctx := c.Request().Context()

	restaurants, err := h.directory.Search(ctx, c.QueryParam("city"), c.QueryParam("term"))
	if err != nil {
		return fail(c, err)
	}

	summaries := make([]RestaurantSummary, 0, len(restaurants))
	for i := range restaurants {
		summaries = append(summaries, summaryOf(&restaurants[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{"restaurants": summaries})
}

// Suggest returns autocomplete suggestions for the query parameter.
func (h *Handlers) Suggest(c echo.Context) error {
	suggestions, err := h.directory.Suggest(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"suggestions": suggestions})
}

// Restaurant returns the public detail of one restaurant.
func (h *Handlers) Restaurant(c echo.Context) error {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		return JSONError(c, http.StatusBadRequest, CodeMissingParameter, "slug")
	}

	rest, err := h.directory.Restaurant(c.Request().Context(), slug)
	if err != nil {
		return fail(c, err)
	}

	detail := RestaurantDetail{
		RestaurantSummary: summaryOf(rest),
		Description:       rest.Description,
		ReviewerNotes:     rest.ReviewerNotes,
	}
	if rest.ReportURL.Valid {
		detail.ReportURL = rest.ReportURL.String
	}
	return c.JSON(http.StatusOK, map[string]any{"restaurant": detail})
}
