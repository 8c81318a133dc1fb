// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package layout

import (
	"image"
	"image/color"
)

// Point is a position on a page.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Surface is a paint target for a Page. Text is positioned by its baseline.
type Surface interface {
	FillRect(r Rect, c color.Color)
	Line(from, to Point, width float64, c color.Color)
	Text(s string, x, y float64, f Font, c color.Color)
	Image(img image.Image, r Rect)
	// FillPolygon fills a closed path. A non-empty clip restricts the fill.
	FillPolygon(pts []Point, c color.Color, clip Rect)
	StrokePolygon(pts []Point, width float64, c color.Color)
}

// Op is one entry of a page's display list.
type Op interface {
	paint(s Surface)
}

// TextOp draws a single line of text with its baseline at Y.
type TextOp struct {
	Color color.Color
	Text  string
	Font  Font
	X, Y  float64
}

func (o TextOp) paint(s Surface) { s.Text(o.Text, o.X, o.Y, o.Font, o.Color) }

// RectOp fills a rectangle.
type RectOp struct {
	Fill color.Color
	Rect Rect
}

func (o RectOp) paint(s Surface) { s.FillRect(o.Rect, o.Fill) }

// LineOp strokes a straight line.
type LineOp struct {
	Color    color.Color
	From, To Point
	Width    float64
}

func (o LineOp) paint(s Surface) { s.Line(o.From, o.To, o.Width, o.Color) }

// ImageOp draws an image scaled into Rect.
type ImageOp struct {
	Image image.Image
	Rect  Rect
}

func (o ImageOp) paint(s Surface) { s.Image(o.Image, o.Rect) }

// PolygonOp fills a closed polygon, optionally clipped.
type PolygonOp struct {
	Fill   color.Color
	Points []Point
	Clip   Rect
}

func (o PolygonOp) paint(s Surface) { s.FillPolygon(o.Points, o.Fill, o.Clip) }

// OutlineOp strokes a closed polygon.
type OutlineOp struct {
	Color  color.Color
	Points []Point
	Width  float64
}

func (o OutlineOp) paint(s Surface) { s.StrokePolygon(o.Points, o.Width, o.Color) }

// Page is a fixed-size display list.
type Page struct {
	Ops    []Op
	Width  float64
	Height float64
}

// NewPage creates an empty page of the given size.
func NewPage(width, height float64) *Page {
	return &Page{Width: width, Height: height}
}

// Add appends ops to the display list.
func (p *Page) Add(ops ...Op) {
	p.Ops = append(p.Ops, ops...)
}

// Text appends a line of text with its baseline at y.
func (p *Page) Text(s string, x, y float64, f Font, c color.Color) {
	p.Add(TextOp{Text: s, X: x, Y: y, Font: f, Color: c})
}

// FillRect appends a filled rectangle.
func (p *Page) FillRect(r Rect, c color.Color) {
	p.Add(RectOp{Rect: r, Fill: c})
}

// Line appends a stroked line.
func (p *Page) Line(from, to Point, width float64, c color.Color) {
	p.Add(LineOp{From: from, To: to, Width: width, Color: c})
}

// Image appends an image. Nil images are skipped.
func (p *Page) Image(img image.Image, r Rect) {
	if img == nil {
		return
	}
	p.Add(ImageOp{Image: img, Rect: r})
}

// Paint replays the display list onto s.
func (p *Page) Paint(s Surface) {
	for _, op := range p.Ops {
		op.paint(s)
	}
}

// Texts returns all text ops in drawing order.
func (p *Page) Texts() []TextOp {
	var out []TextOp
	for _, op := range p.Ops {
		if t, ok := op.(TextOp); ok {
			out = append(out, t)
		}
	}
	return out
}

// FindText returns the first text op whose content equals s.
func (p *Page) FindText(s string) (TextOp, bool) {
	for _, t := range p.Texts() {
		if t.Text == s {
			return t, true
		}
	}
	return TextOp{}, false
}
