// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package documents

import (
	"fmt"
	"image/color"

	"github.com/brisingire/gastronomie-verzeichnis/internal/layout"
	"github.com/brisingire/gastronomie-verzeichnis/internal/stars"
)

// Certificate canvas in pixels.
const (
	CertificateWidth  = 1200
	CertificateHeight = 1800
	certificateMargin = 20.0
)

const (
	starRadius = 40.0
	starGap    = 20.0
)

var (
	darkGray = color.RGBA{R: 0x32, G: 0x32, B: 0x32, A: 0xff}
	flagRed  = color.RGBA{R: 0xde, G: 0x21, B: 0x10, A: 0xff}
	flagGold = color.RGBA{R: 0xff, G: 0xce, B: 0x00, A: 0xff}
)

// CertificatePage lays out the certificate.
func (c *Composer) CertificatePage(m layout.Measurer, in Input) *layout.Page {
	p := layout.NewPage(CertificateWidth, CertificateHeight)
	center := func(width float64) float64 {
		return layout.CenterX(0, CertificateWidth, width)
	}

	// Header with flag bands as tall as the brand text.
	brand := "Gastronomie-Verzeichnis"
	brandFont := layout.Regular(32)
	hh := m.Measure(brand, brandFont).Height()
	band := hh / 3
	for i, fill := range []color.Color{color.Black, flagRed, flagGold} {
		p.FillRect(layout.Rect{X: 50, Y: 52 + float64(i)*band, W: 10, H: band}, fill)
	}
	p.Text(brand, 65, 50+hh, brandFont, darkGray)

	if logo := c.assets.Logo; logo != nil {
		w, h := fitWithin(logo, 200, 200)
		p.Image(logo, layout.Rect{X: CertificateWidth - w - 50, Y: 50, W: w, H: h})
	}

	titleFont := layout.Bold(80)
	p.Text("ZERTIFIKAT", center(m.Measure("ZERTIFIKAT", titleFont).Width), 300, titleFont, darkGray)

	introFont := layout.Regular(30)
	y := 460.0
	for _, line := range certificateIntro {
		p.Text(line, center(m.Measure(line, introFont).Width), y, introFont, darkGray)
		y += introFont.Size + 10
	}

	maxWidth := CertificateWidth - 2*certificateMargin

	nameFont, nameMetrics := layout.ShrinkToFit(m, in.Name, maxWidth, layout.Regular(40), 2)
	nameY := y + 280
	p.Text(in.Name, center(nameMetrics.Width), nameY, nameFont, darkGray)

	addrFont, addrMetrics := layout.ShrinkToFit(m, in.Address, maxWidth, layout.Regular(30), 2)
	addrY := nameY + nameMetrics.Height() + 20
	p.Text(in.Address, center(addrMetrics.Width), addrY, addrFont, darkGray)

	starY := addrY + addrMetrics.Height() + 250
	startX := center(stars.RowWidth(starRadius, starGap)) + starRadius
	stars.Row(p, startX, starY, starRadius, starGap, in.Rating)

	ratingFont := layout.Regular(40)
	ratingText := fmt.Sprintf("%.1f von 5 Sternen", stars.Clamp(in.Rating))
	p.Text(ratingText, center(m.Measure(ratingText, ratingFont).Width), starY+starRadius+50, ratingFont, darkGray)

	if sig := c.assets.Signature; sig != nil {
		w, h := scaleToWidth(sig, CertificateWidth)
		p.Image(sig, layout.Rect{X: 0, Y: CertificateHeight - h, W: w, H: h})
	}

	dateFont := layout.Regular(24)
	dateText := "Ausstellungsdatum: " + LongDate(c.Now())
	dateWidth := m.Measure(dateText, dateFont).Width
	p.Text(dateText, CertificateWidth-dateWidth-100, CertificateHeight-50, dateFont, darkGray)

	return p
}
