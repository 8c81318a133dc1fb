// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

// Package stars draws five-star rating rows with a left-to-right partial fill.
package stars

import (
	"image/color"
	"math"

	"github.com/brisingire/gastronomie-verzeichnis/internal/layout"
)

// Count is the number of stars in a rating row.
const Count = 5

// Colors used for every star.
var (
	Base    = color.RGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff}
	Gold    = color.RGBA{R: 0xd4, G: 0xaf, B: 0x37, A: 0xff}
	Outline = color.RGBA{R: 0x32, G: 0x32, B: 0x32, A: 0xff}
)

// OutlineWidth is the stroke width of the star border.
const OutlineWidth = 2.0

// Vertices returns the ten points of a five-pointed star centered at
// (cx, cy), alternating outer radius r and inner radius r/2, starting with
// the tip pointing straight up.
func Vertices(cx, cy, r float64) []layout.Point {
	pts := make([]layout.Point, 10)
	for i := range pts {
		angle := math.Pi/2 + float64(i)*math.Pi/5
		radius := r
		if i%2 == 1 {
			radius = r * 0.5
		}
		pts[i] = layout.Point{
			X: cx + radius*math.Cos(angle),
			Y: cy - radius*math.Sin(angle),
		}
	}
	return pts
}

// Bounds returns the bounding box of pts.
func Bounds(pts []layout.Point) layout.Rect {
	if len(pts) == 0 {
		return layout.Rect{}
	}
	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return layout.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Clamp limits a rating to [0, Count]. NaN becomes 0.
func Clamp(rating float64) float64 {
	switch {
	case math.IsNaN(rating), rating < 0:
		return 0
	case rating > Count:
		return Count
	}
	return rating
}

// Fills returns the fill ratio of each star for rating: floor(rating) full
// stars, at most one partial star, the rest empty.
func Fills(rating float64) [Count]float64 {
	rating = Clamp(rating)
	full := int(math.Floor(rating))
	partial := rating - float64(full)

	var fills [Count]float64
	for i := range fills {
		switch {
		case i < full:
			fills[i] = 1
		case i == full && partial > 0:
			fills[i] = partial
		}
	}
	return fills
}

// Draw appends one star to p: light base, gold fill clipped to the left
// ratio of its bounding box, dark outline on top.
func Draw(p *layout.Page, cx, cy, r, ratio float64) {
	pts := Vertices(cx, cy, r)
	p.Add(layout.PolygonOp{Points: pts, Fill: Base})

	if ratio > 0 {
		box := Bounds(pts)
		box.W *= math.Min(ratio, 1)
		p.Add(layout.PolygonOp{Points: pts, Fill: Gold, Clip: box})
	}

	p.Add(layout.OutlineOp{Points: pts, Width: OutlineWidth, Color: Outline})
}

// Row appends Count stars of radius r separated by gap, with the first
// star centered at (startX, cy).
func Row(p *layout.Page, startX, cy, r, gap, rating float64) {
	for i, ratio := range Fills(rating) {
		cx := startX + float64(i)*(2*r+gap)
		Draw(p, cx, cy, r, ratio)
	}
}

// RowWidth returns the total width of a row of stars.
func RowWidth(r, gap float64) float64 {
	return 2*r*Count + gap*(Count-1)
}
