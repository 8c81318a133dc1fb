// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package documents

import (
	"image/color"
	"strings"
	"time"

	"github.com/brisingire/gastronomie-verzeichnis/internal/layout"
)

const (
	invoiceMargin = 40.0
	invoiceLine   = 14.0
	noticeLeading = 12.0
)

var invoiceBlue = color.RGBA{R: 0x00, G: 0x33, B: 0x66, A: 0xff}

// InvoicePage lays out the invoice on an A4 page measured in points.
// Positions are given as the top of each text line and converted to
// baselines with the font ascent.
func (c *Composer) InvoicePage(m layout.Measurer, in Input, number string, date time.Time) *layout.Page {
	const (
		pageWidth  = 595.28
		pageHeight = 841.89
	)
	p := layout.NewPage(pageWidth, pageHeight)
	ink := color.Black
	regular := layout.Regular(10)
	bold := layout.Bold(10)
	contentWidth := pageWidth - 2*invoiceMargin

	text := func(s string, x, top float64, f layout.Font, col color.Color) {
		p.Text(s, x, top+m.Measure(s, f).Ascent, f, col)
	}
	centered := func(s string, top float64, f layout.Font, col color.Color) {
		x := layout.CenterX(invoiceMargin, pageWidth-invoiceMargin, m.Measure(s, f).Width)
		text(s, x, top, f, col)
	}
	rightAligned := func(s string, top float64, f layout.Font) {
		text(s, pageWidth-invoiceMargin-m.Measure(s, f).Width, top, f, ink)
	}

	iss := c.Issuer
	top := invoiceMargin

	if logo := c.assets.Logo; logo != nil {
		w, h := scaleToWidth(logo, 100)
		p.Image(logo, layout.Rect{X: invoiceMargin, Y: top - 5, W: w, H: h})
	}

	issuerX := pageWidth - invoiceMargin - 150
	for i, line := range []string{iss.Name, iss.Owner, iss.Street, iss.City, "E-Mail: " + iss.Email} {
		text(line, issuerX, top+float64(i)*invoiceLine, regular, invoiceBlue)
	}

	meta := []string{
		"Rechnungsnummer: " + number,
		"Rechnungsdatum: " + ShortDate(date),
		"Zahlungsziel: 14 Tage ohne Abzug",
	}
	for i, line := range meta {
		text(line, invoiceMargin, top+float64(i)*invoiceLine, regular, ink)
	}

	top += 80
	centered("Rechnung", top, layout.Bold(20), invoiceBlue)

	top += 80
	street, city := SplitAddress(in.Address)
	text("Rechnungsempfänger:", invoiceMargin, top, bold, ink)
	for i, line := range []string{in.Name, street, city} {
		text(line, invoiceMargin, top+float64(i+1)*invoiceLine, regular, ink)
	}

	price := FormatEuro(iss.Price)
	table := layout.NewInvoiceTable(invoiceMargin, contentWidth)
	next := table.Header(p, m, top+100, []string{"Pos.", "Beschreibung", "Menge", "Einzelpreis", "Gesamt"}, bold, ink)
	next = table.Row(p, m, next, []string{"1", lineItemDescription, "1", price, price}, regular, ink)

	summaryTop := next + 60
	labelX := pageWidth - invoiceMargin - 200
	text("Zwischensumme:", labelX, summaryTop, regular, ink)
	rightAligned(price, summaryTop, regular)
	text("Umsatzsteuer (0 %):", labelX, summaryTop+invoiceLine, regular, ink)
	rightAligned(FormatEuro(0), summaryTop+invoiceLine, regular)
	text("Gesamt:", labelX, summaryTop+2*invoiceLine, bold, ink)
	rightAligned(price, summaryTop+2*invoiceLine, bold)

	noticeTop := summaryTop + 100
	for i, line := range layout.Wrap(m, reverseChargeNotice, contentWidth, regular) {
		text(line, invoiceMargin, noticeTop+float64(i)*noticeLeading, regular, ink)
	}

	payTop := noticeTop + 60
	text("Zahlungsinformationen", invoiceMargin, payTop, bold, ink)
	for i, line := range []string{"Bank: " + iss.Bank, "IBAN: " + iss.IBAN, "BIC: " + iss.BIC} {
		text(line, invoiceMargin, payTop+float64(i+1)*invoiceLine, regular, ink)
	}

	footerTop := pageHeight - invoiceMargin - 40
	thanks := layout.Wrap(m, thankYouNote, contentWidth, regular)
	thanksTop := footerTop - 10 - float64(len(thanks))*noticeLeading
	for i, line := range thanks {
		centered(line, thanksTop+float64(i)*noticeLeading, regular, ink)
	}
	contact := strings.Join([]string{
		iss.Name, iss.Owner, iss.Street + ", " + iss.City, "E-Mail: " + iss.Email,
	}, " | ")
	centered(contact, footerTop, layout.Regular(8), ink)

	return p
}
