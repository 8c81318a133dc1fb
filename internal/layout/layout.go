// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

// Package layout positions text and shapes on fixed-size pages.
//
// Pages are built as display lists first and painted onto a Surface second,
// so coordinates can be inspected without decoding pixels.
package layout

import (
	"strings"
)

// MinFontSize is the floor for ShrinkToFit. Text that still overflows at
// this size is drawn as-is and clipped by the canvas.
const MinFontSize = 6.0

// Font selects a face by weight and size (pixels on raster pages, points
// on PDF pages).
type Font struct {
	Size float64
	Bold bool
}

// Regular returns the regular weight at the given size.
func Regular(size float64) Font { return Font{Size: size} }

// Bold returns the bold weight at the given size.
func Bold(size float64) Font { return Font{Size: size, Bold: true} }

// Metrics describes the extent of a measured string.
type Metrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Height returns ascent plus descent.
func (m Metrics) Height() float64 {
	return m.Ascent + m.Descent
}

// Measurer reports glyph metrics for text set in a font.
type Measurer interface {
	Measure(text string, f Font) Metrics
}

// Wrap breaks text into lines no wider than maxWidth using greedy word
// wrapping. A single word wider than maxWidth is placed on its own line.
func Wrap(m Measurer, text string, maxWidth float64, f Font) []string {
	var lines []string
	current := ""

	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current != "" && m.Measure(candidate, f).Width > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}

	return lines
}

// ShrinkToFit decreases the font size by step until text fits maxWidth or
// MinFontSize is reached. It returns the final font and its metrics.
func ShrinkToFit(m Measurer, text string, maxWidth float64, start Font, step float64) (Font, Metrics) {
	f := start
	metrics := m.Measure(text, f)
	if step <= 0 {
		return f, metrics
	}

	for metrics.Width > maxWidth && f.Size > MinFontSize {
		f.Size -= step
		if f.Size < MinFontSize {
			f.Size = MinFontSize
		}
		metrics = m.Measure(text, f)
	}

	return f, metrics
}

// Cursor tracks the vertical position while flowing content down a page.
type Cursor struct {
	Y float64
}

// Advance moves the cursor down by lineHeight and returns the new position.
func (c *Cursor) Advance(lineHeight float64) float64 {
	c.Y += lineHeight
	return c.Y
}

// CenterX returns the x position that centers a run of the given width
// between left and right.
func CenterX(left, right, width float64) float64 {
	return left + (right-left-width)/2
}
