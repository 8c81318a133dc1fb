// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package layout

import (
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// Canvas is a raster Surface backed by gg.
type Canvas struct {
	dc    *gg.Context
	faces *Faces
}

// NewCanvas creates a white canvas of the given pixel size.
func NewCanvas(width, height int, faces *Faces) *Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	return &Canvas{dc: dc, faces: faces}
}

// FillRect implements Surface.
func (c *Canvas) FillRect(r Rect, col color.Color) {
	c.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	c.dc.SetColor(col)
	c.dc.Fill()
}

// Line implements Surface.
func (c *Canvas) Line(from, to Point, width float64, col color.Color) {
	c.dc.SetLineWidth(width)
	c.dc.SetColor(col)
	c.dc.DrawLine(from.X, from.Y, to.X, to.Y)
	c.dc.Stroke()
}

// Text implements Surface.
func (c *Canvas) Text(s string, x, y float64, f Font, col color.Color) {
	c.dc.SetFontFace(c.faces.Face(f))
	c.dc.SetColor(col)
	c.dc.DrawString(s, x, y)
}

// Image implements Surface. The image is resampled to the target size.
func (c *Canvas) Image(img image.Image, r Rect) {
	w, h := int(math.Round(r.W)), int(math.Round(r.H))
	if w <= 0 || h <= 0 {
		return
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	c.dc.DrawImage(dst, int(math.Round(r.X)), int(math.Round(r.Y)))
}

// FillPolygon implements Surface.
func (c *Canvas) FillPolygon(pts []Point, col color.Color, clip Rect) {
	if len(pts) == 0 {
		return
	}
	c.dc.Push()
	defer c.dc.Pop()

	if !clip.Empty() {
		c.dc.DrawRectangle(clip.X, clip.Y, clip.W, clip.H)
		c.dc.Clip()
	}
	c.polygon(pts)
	c.dc.SetColor(col)
	c.dc.Fill()
}

// StrokePolygon implements Surface.
func (c *Canvas) StrokePolygon(pts []Point, width float64, col color.Color) {
	if len(pts) == 0 {
		return
	}
	c.polygon(pts)
	c.dc.SetLineWidth(width)
	c.dc.SetColor(col)
	c.dc.Stroke()
}

func (c *Canvas) polygon(pts []Point) {
	c.dc.NewSubPath()
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
}

// Rendered returns the rendered image.
func (c *Canvas) Rendered() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the canvas as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// EncodeJPEG writes the canvas as JPEG with the given quality (1-100).
func (c *Canvas) EncodeJPEG(w io.Writer, quality int) error {
	return jpeg.Encode(w, c.dc.Image(), &jpeg.Options{Quality: quality})
}
