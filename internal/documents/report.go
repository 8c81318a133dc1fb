// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package documents

import (
	"fmt"
	"image/color"

	"github.com/brisingire/gastronomie-verzeichnis/internal/layout"
)

// Test report canvas in pixels.
const (
	ReportWidth  = 1240
	ReportHeight = 1754
	reportMargin = 70.0
)

const (
	bodyLine       = 24.0
	headingLine    = 28.0
	sectionGap     = 16.0
	conclusionGap  = 30.0
	bodyIndent     = 20.0
	noteRules      = 4
	noteRuleSpace  = 50.0
	signatureWidth = 800.0
)

// ReportPage lays out the test report.
func (c *Composer) ReportPage(m layout.Measurer, in Input) *layout.Page {
	p := layout.NewPage(ReportWidth, ReportHeight)
	ink := color.Black
	heading := layout.Regular(20)
	body := layout.Regular(18)
	textWidth := ReportWidth - 2*reportMargin
	bodyWidth := textWidth - bodyIndent

	p.Text("Gastronomie Verzeichnis", reportMargin, reportMargin+18, layout.Bold(18), ink)

	title := fmt.Sprintf("TESTBERICHT – %s – %s, %s – Deutschland", in.Name, in.Address, in.City)
	cur := layout.Cursor{Y: reportMargin + 40}
	for _, line := range layout.Wrap(m, title, textWidth, body) {
		p.Text(line, reportMargin, cur.Y, body, ink)
		cur.Advance(bodyLine)
	}
	cur.Advance(18)

	p.Text("Gastronomie- und Hygienetest", reportMargin, cur.Y, layout.Bold(20), ink)
	cur.Advance(headingLine)

	section := func(title string, lines []string, gap float64) {
		p.Text(title, reportMargin, cur.Y, heading, ink)
		cur.Advance(headingLine)
		for _, line := range lines {
			p.Text(line, reportMargin+bodyIndent, cur.Y, body, ink)
			cur.Advance(bodyLine)
		}
		cur.Advance(gap)
	}
	wrap := func(text string) []string {
		return layout.Wrap(m, text, bodyWidth, body)
	}

	intro := c.Variants.Choose(introPool(in.Name)) + CuisineClause(in.Description)
	section("Einleitung", wrap(intro), sectionGap)
	section("Methodik", wrap(c.Variants.Choose(methodologyPool)), sectionGap)

	grades := Grades(in.Rating)
	results := make([]string, len(Categories))
	for i, cat := range Categories {
		results[i] = cat + ": " + grades[i]
	}
	section("Ergebnisse", results, sectionGap)

	section("Diskussion", wrap(c.Variants.Choose(discussionPool)), sectionGap)
	section("Fazit", wrap(c.Variants.Choose(conclusionPool(in.Name, in.Rating))), conclusionGap)

	p.Text("Anmerkung des Prüfers:", reportMargin, cur.Y, heading, ink)
	cur.Advance(30)
	for range noteRules {
		p.Line(
			layout.Point{X: reportMargin, Y: cur.Y},
			layout.Point{X: ReportWidth - reportMargin, Y: cur.Y},
			1, ink,
		)
		cur.Advance(noteRuleSpace)
	}

	if sig := c.assets.Signature; sig != nil {
		w, h := scaleToWidth(sig, signatureWidth)
		p.Image(sig, layout.Rect{X: reportMargin, Y: ReportHeight - h - 40, W: w, H: h})
	}

	return p
}
