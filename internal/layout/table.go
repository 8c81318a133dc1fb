// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package layout

import (
	"image/color"
)

// Table is a single-line-per-row grid with fixed column offsets.
type Table struct {
	HeaderFill color.Color
	GridColor  color.Color
	// Columns holds the left edge of each column relative to X.
	Columns []float64
	X       float64
	// Right is the right edge of the last column relative to X.
	Right float64
	// FillWidth is the width of the header background.
	FillWidth float64
	RowHeight float64
	GridWidth float64
	// TextInset offsets cell text from the cell's top-left corner.
	TextInset Point
}

// NewInvoiceTable returns the five column layout used for invoice line
// items (position, description, quantity, unit price, total).
func NewInvoiceTable(x, fillWidth float64) Table {
	return Table{
		X:          x,
		Columns:    []float64{0, 50, 300, 370, 450},
		Right:      520,
		FillWidth:  fillWidth,
		RowHeight:  20,
		GridWidth:  0.5,
		GridColor:  color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff},
		HeaderFill: color.RGBA{R: 0xa9, G: 0xa9, B: 0xa9, A: 0xff},
		TextInset:  Point{X: 2, Y: 5},
	}
}

// ColumnX returns the absolute left edge of column i.
func (t Table) ColumnX(i int) float64 {
	return t.X + t.Columns[i]
}

// Header appends the filled header row at top y and returns the y of the
// next row.
func (t Table) Header(p *Page, m Measurer, y float64, cells []string, f Font, c color.Color) float64 {
	p.FillRect(Rect{X: t.X, Y: y, W: t.FillWidth, H: t.RowHeight}, t.HeaderFill)
	return t.Row(p, m, y, cells, f, c)
}

// Row appends one row of cells at top y with grid lines around every cell
// and returns the y of the next row.
func (t Table) Row(p *Page, m Measurer, y float64, cells []string, f Font, c color.Color) float64 {
	ascent := m.Measure("", f).Ascent
	for i, cell := range cells {
		if i >= len(t.Columns) {
			break
		}
		p.Text(cell, t.ColumnX(i)+t.TextInset.X, y+t.TextInset.Y+ascent, f, c)
	}
	t.grid(p, y)
	return y + t.RowHeight
}

func (t Table) grid(p *Page, y float64) {
	right := t.X + t.Right
	bottom := y + t.RowHeight

	p.Line(Point{X: t.X, Y: y}, Point{X: right, Y: y}, t.GridWidth, t.GridColor)
	p.Line(Point{X: t.X, Y: bottom}, Point{X: right, Y: bottom}, t.GridWidth, t.GridColor)

	for _, col := range t.Columns {
		x := t.X + col
		p.Line(Point{X: x, Y: y}, Point{X: x, Y: bottom}, t.GridWidth, t.GridColor)
	}
	p.Line(Point{X: right, Y: y}, Point{X: right, Y: bottom}, t.GridWidth, t.GridColor)
}
