// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"database/sql"
	"time"
)

// Restaurant is a directory entry.
type Restaurant struct { //nolint:govet // fieldalignment not critical for models
	ID               int64           `db:"id" json:"-"`
	Slug             string          `db:"slug" json:"slug"`
	Name             string          `db:"name" json:"name"`
	Address          string          `db:"address" json:"address"`
	City             string          `db:"city" json:"city"`
	Rating           sql.NullFloat64 `db:"rating" json:"-"`
	Description      string          `db:"description" json:"-"`
	Verified         bool            `db:"verified" json:"verified"`
	VerificationCode string          `db:"verification_code" json:"-"`
	ReportURL        sql.NullString  `db:"report_url" json:"-"`
	ReviewerNotes    string          `db:"reviewer_notes" json:"-"`
	VerifiedAt       sql.NullTime    `db:"verified_at" json:"-"`
	UnlockToken      sql.NullString  `db:"unlock_token" json:"-"`
	UnlockClaimedAt  sql.NullInt64   `db:"unlock_claimed_at" json:"-"`
	CreatedAt        time.Time       `db:"created_at" json:"-"`
	UpdatedAt        time.Time       `db:"updated_at" json:"-"`
}

// Score returns the rating, treating NULL as 0.
func (r *Restaurant) Score() float64 {
	if !r.Rating.Valid {
		return 0
	}
	return r.Rating.Float64
}

// Delivery statuses.
const (
	DeliverySent   = "sent"
	DeliveryFailed = "failed"
)

// Delivery records one attempt to send the unlocked documents.
type Delivery struct { //nolint:govet // fieldalignment not critical for models
	ID            string    `db:"id" json:"id"`
	RestaurantID  int64     `db:"restaurant_id" json:"restaurant_id"`
	Email         string    `db:"email" json:"email"`
	InvoiceNumber string    `db:"invoice_number" json:"invoice_number"`
	Status        string    `db:"status" json:"status"`
	Error         string    `db:"error" json:"error,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Suggestion types.
const (
	SuggestionRestaurant = "restaurant"
	SuggestionCity       = "city"
)

// Suggestion is an autocomplete entry.
type Suggestion struct {
	Label string `json:"label"`
	Type  string `json:"type"`
	Value string `json:"value"`
}
