// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package layout

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// Core Times metrics as fractions of the font size.
const (
	timesAscent  = 0.683
	timesDescent = 0.217
)

// Document is a single-page A4 PDF Surface using the core Times fonts.
// It also implements Measurer for the same fonts.
type Document struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string
	images    int
}

// NewDocument creates an A4 portrait document measured in points.
func NewDocument(title string) *Document {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(40, 40, 40)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, true)
	pdf.SetCreator("gastronomie-verzeichnis", true)
	pdf.AddPage()

	return &Document{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// Size returns the page width and height in points.
func (d *Document) Size() (float64, float64) {
	return d.pdf.GetPageSize()
}

func (d *Document) setFont(f Font) {
	style := ""
	if f.Bold {
		style = "B"
	}
	d.pdf.SetFont("Times", style, f.Size)
}

// Measure implements Measurer.
func (d *Document) Measure(text string, f Font) Metrics {
	d.setFont(f)
	return Metrics{
		Width:   d.pdf.GetStringWidth(d.translate(text)),
		Ascent:  timesAscent * f.Size,
		Descent: timesDescent * f.Size,
	}
}

// FillRect implements Surface.
func (d *Document) FillRect(r Rect, c color.Color) {
	d.pdf.SetFillColor(rgb(c))
	d.pdf.Rect(r.X, r.Y, r.W, r.H, "F")
}

// Line implements Surface.
func (d *Document) Line(from, to Point, width float64, c color.Color) {
	d.pdf.SetLineWidth(width)
	d.pdf.SetDrawColor(rgb(c))
	d.pdf.Line(from.X, from.Y, to.X, to.Y)
}

// Text implements Surface.
func (d *Document) Text(s string, x, y float64, f Font, c color.Color) {
	d.setFont(f)
	d.pdf.SetTextColor(rgb(c))
	d.pdf.Text(x, y, d.translate(s))
}

// Image implements Surface. The image is embedded as PNG.
func (d *Document) Image(img image.Image, r Rect) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		d.pdf.SetError(fmt.Errorf("encode image: %w", err))
		return
	}

	d.images++
	name := fmt.Sprintf("img%d", d.images)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(name, opts, &buf)
	d.pdf.ImageOptions(name, r.X, r.Y, r.W, r.H, false, opts, 0, "")
}

// FillPolygon implements Surface.
func (d *Document) FillPolygon(pts []Point, c color.Color, clip Rect) {
	if !clip.Empty() {
		d.pdf.ClipRect(clip.X, clip.Y, clip.W, clip.H, false)
		defer d.pdf.ClipEnd()
	}
	d.pdf.SetFillColor(rgb(c))
	d.pdf.Polygon(pdfPoints(pts), "F")
}

// StrokePolygon implements Surface.
func (d *Document) StrokePolygon(pts []Point, width float64, c color.Color) {
	d.pdf.SetLineWidth(width)
	d.pdf.SetDrawColor(rgb(c))
	d.pdf.Polygon(pdfPoints(pts), "D")
}

// Output writes the finished PDF to w.
func (d *Document) Output(w io.Writer) error {
	if err := d.pdf.Error(); err != nil {
		return err
	}
	return d.pdf.Output(w)
}

func pdfPoints(pts []Point) []gofpdf.PointType {
	out := make([]gofpdf.PointType, len(pts))
	for i, p := range pts {
		out[i] = gofpdf.PointType{X: p.X, Y: p.Y}
	}
	return out
}

func rgb(c color.Color) (int, int, int) {
	r, g, b, _ := c.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}
