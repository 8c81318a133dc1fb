// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

// Package documents renders the test report, certificate and invoice for a
// restaurant.
package documents

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/brisingire/gastronomie-verzeichnis/internal/config"
	"github.com/brisingire/gastronomie-verzeichnis/internal/layout"
)

// Input is the restaurant data every document is built from.
type Input struct {
	Name        string
	Address     string
	City        string
	Description string
	Slug        string
	Rating      float64
}

// Issuer is the invoicing party printed on every invoice.
type Issuer struct {
	Name   string
	Owner  string
	Street string
	City   string
	Email  string
	Bank   string
	IBAN   string
	BIC    string
	Price  float64
}

// IssuerFromConfig returns the fixed issuer address with the bank details
// and price from cfg.
func IssuerFromConfig(cfg config.InvoiceConfig) Issuer {
	return Issuer{
		Name:   "Gastronomie-Verzeichnis",
		Owner:  "Jonas Amthor",
		Street: "Talhof 1",
		City:   "89522 Heidenheim",
		Email:  "kontakt@gastronomie-verzeichnis.de",
		Bank:   cfg.Bank,
		IBAN:   cfg.IBAN,
		BIC:    cfg.BIC,
		Price:  cfg.Price,
	}
}

// Invoice is a rendered invoice.
type Invoice struct {
	Number string
	PDF    []byte
}

// Composer renders documents. The exported fields may be replaced before
// first use.
type Composer struct {
	assets *Assets

	Variants VariantSource
	Now      func() time.Time
	Issuer   Issuer
	// InvoiceSuffix returns the random part of an invoice number in
	// [1000, 9999].
	InvoiceSuffix func() int
}

// New creates a Composer with random variants and the wall clock.
func New(assets *Assets, issuer Issuer) *Composer {
	rng := NewRandomSource(0)
	return &Composer{
		assets:        assets,
		Variants:      rng,
		Now:           time.Now,
		Issuer:        issuer,
		InvoiceSuffix: func() int { return 1000 + rng.IntN(9000) },
	}
}

// Report renders the test report as JPEG.
func (c *Composer) Report(ctx context.Context, in Input) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	faces := c.assets.Fonts.Faces()
	defer faces.Close()

	canvas := layout.NewCanvas(ReportWidth, ReportHeight, faces)
	c.ReportPage(faces, in).Paint(canvas)

	var buf bytes.Buffer
	if err := canvas.EncodeJPEG(&buf, 90); err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}
	return buf.Bytes(), nil
}

// Certificate renders the certificate as PNG.
func (c *Composer) Certificate(ctx context.Context, in Input) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	faces := c.assets.Fonts.Faces()
	defer faces.Close()

	canvas := layout.NewCanvas(CertificateWidth, CertificateHeight, faces)
	c.CertificatePage(faces, in).Paint(canvas)

	var buf bytes.Buffer
	if err := canvas.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encoding certificate: %w", err)
	}
	return buf.Bytes(), nil
}

// Invoice renders a single-page invoice PDF with a fresh invoice number.
func (c *Composer) Invoice(ctx context.Context, in Input) (*Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := c.Now()
	number := InvoiceNumber(now, c.InvoiceSuffix())

	doc := layout.NewDocument("Rechnung " + number)
	c.InvoicePage(doc, in, number, now).Paint(doc)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing invoice: %w", err)
	}
	return &Invoice{Number: number, PDF: buf.Bytes()}, nil
}
