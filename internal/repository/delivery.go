// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/brisingire/gastronomie-verzeichnis/internal/models"
	"github.com/google/uuid"
)

// CreateDelivery records a delivery attempt. ID and CreatedAt are filled in
// when empty.
func (r *Repository) CreateDelivery(ctx context.Context, d *models.Delivery) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	query := r.q(`INSERT INTO deliveries
		(id, restaurant_id, email, invoice_number, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.RestaurantID, d.Email, d.InvoiceNumber, d.Status, d.Error, d.CreatedAt)
	return err
}

// ListDeliveries returns all deliveries of a restaurant, oldest first.
func (r *Repository) ListDeliveries(ctx context.Context, restaurantID int64) ([]models.Delivery, error) {
	query := r.q(`SELECT id, restaurant_id, email, invoice_number, status, error, created_at
		FROM deliveries WHERE restaurant_id = ? ORDER BY created_at`)

	deliveries := []models.Delivery{}
	if err := r.db.SelectContext(ctx, &deliveries, query, restaurantID); err != nil {
		return nil, err
	}
	return deliveries, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
