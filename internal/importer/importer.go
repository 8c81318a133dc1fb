// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

// Package importer loads restaurant records from TOML seed files.
package importer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/brisingire/gastronomie-verzeichnis/internal/models"
	"github.com/brisingire/gastronomie-verzeichnis/internal/repository"
	"github.com/brisingire/gastronomie-verzeichnis/internal/services/verification"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Record is one [[restaurant]] table of a seed file.
type Record struct {
	Slug        string   `toml:"slug"`
	Name        string   `toml:"name"`
	Address     string   `toml:"address"`
	City        string   `toml:"city"`
	Rating      *float64 `toml:"rating"`
	Description string   `toml:"description"`
	Code        string   `toml:"code"`
	Notes       string   `toml:"notes"`
}

type seedFile struct {
	Restaurants []Record `toml:"restaurant"`
}

// Store is the persistence needed by the importer.
type Store interface {
	GetRestaurantBySlug(ctx context.Context, slug string) (*models.Restaurant, error)
	UpsertRestaurant(ctx context.Context, rest *models.Restaurant) error
}

// Result summarizes an import.
type Result struct {
	Created int
	Updated int
}

// Parse decodes a seed file and validates every record.
func Parse(r io.Reader) ([]Record, error) {
	var seed seedFile
	meta, err := toml.NewDecoder(r).Decode(&seed)
	if err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parsing seed file: unknown key %q", undecoded[0].String())
	}

	seen := make(map[string]int, len(seed.Restaurants))
	for i := range seed.Restaurants {
		rec := &seed.Restaurants[i]
		rec.Name = strings.TrimSpace(rec.Name)
		rec.City = strings.TrimSpace(rec.City)
		if rec.Name == "" {
			return nil, fmt.Errorf("restaurant %d: name is required", i+1)
		}
		if rec.Slug == "" {
			rec.Slug = Slugify(rec.Name + " " + rec.City)
		}
		if rec.Rating != nil && (*rec.Rating < 0 || *rec.Rating > 5) {
			return nil, fmt.Errorf("restaurant %q: rating %.1f out of range 0..5", rec.Slug, *rec.Rating)
		}
		if prev, dup := seen[rec.Slug]; dup {
			return nil, fmt.Errorf("restaurant %d: duplicate slug %q (also restaurant %d)", i+1, rec.Slug, prev)
		}
		seen[rec.Slug] = i + 1
	}

	return seed.Restaurants, nil
}

// Import upserts records. New restaurants without a code get a generated
// one; existing restaurants keep their code unless the record sets one.
func Import(ctx context.Context, store Store, records []Record) (Result, error) {
	var res Result
	for _, rec := range records {
		existing, err := store.GetRestaurantBySlug(ctx, rec.Slug)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			existing = nil
		case err != nil:
			return res, fmt.Errorf("looking up %q: %w", rec.Slug, err)
		}

		code := strings.TrimSpace(rec.Code)
		if code == "" && existing != nil {
			code = existing.VerificationCode
		}
		if code == "" {
			if code, err = verification.GenerateCode(); err != nil {
				return res, err
			}
		}

		rest := &models.Restaurant{
			Slug:             rec.Slug,
			Name:             rec.Name,
			Address:          strings.TrimSpace(rec.Address),
			City:             rec.City,
			Description:      strings.TrimSpace(rec.Description),
			VerificationCode: code,
			ReviewerNotes:    rec.Notes,
		}
		if rec.Rating != nil {
			rest.Rating = sql.NullFloat64{Float64: *rec.Rating, Valid: true}
		}

		if err := store.UpsertRestaurant(ctx, rest); err != nil {
			return res, fmt.Errorf("saving %q: %w", rec.Slug, err)
		}

		if existing == nil {
			res.Created++
			slog.InfoContext(ctx, "restaurant_created", "slug", rec.Slug, "code", code)
		} else {
			res.Updated++
			slog.DebugContext(ctx, "restaurant_updated", "slug", rec.Slug)
		}
	}
	return res, nil
}

var umlauts = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue",
	"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
	"ß", "ss",
)

// Slugify turns s into a lowercase ASCII slug. German umlauts are
// transliterated; other accents are dropped.
func Slugify(s string) string {
	s = umlauts.Replace(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
