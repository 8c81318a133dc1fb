// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package layout

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontSet holds the parsed regular and bold typefaces. It is safe for
// concurrent use; faces derived from it are not.
type FontSet struct {
	regular *opentype.Font
	bold    *opentype.Font
}

// LoadFontSet parses TrueType/OpenType files for the regular and bold
// weights. A missing or unparsable file is an error.
func LoadFontSet(regularPath, boldPath string) (*FontSet, error) {
	regular, err := parseFontFile(regularPath)
	if err != nil {
		return nil, fmt.Errorf("regular font: %w", err)
	}
	bold, err := parseFontFile(boldPath)
	if err != nil {
		return nil, fmt.Errorf("bold font: %w", err)
	}
	return &FontSet{regular: regular, bold: bold}, nil
}

// DefaultFontSet returns the bundled Go fonts.
func DefaultFontSet() (*FontSet, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse go regular: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse go bold: %w", err)
	}
	return &FontSet{regular: regular, bold: bold}, nil
}

func parseFontFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, err
	}
	return opentype.Parse(data)
}

// Faces returns a face cache for one rendering pass.
func (fs *FontSet) Faces() *Faces {
	return &Faces{set: fs, cache: make(map[Font]font.Face)}
}

// Faces caches sized font faces. Not safe for concurrent use.
type Faces struct {
	set   *FontSet
	cache map[Font]font.Face
}

// Face returns the face for f, creating it on first use.
func (fc *Faces) Face(f Font) font.Face {
	if face, ok := fc.cache[f]; ok {
		return face
	}

	src := fc.set.regular
	if f.Bold {
		src = fc.set.bold
	}

	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		slog.Error("failed to create font face", "size", f.Size, "bold", f.Bold, "error", err)
		return basicfont.Face7x13
	}

	fc.cache[f] = face
	return face
}

// Measure implements Measurer using the glyph bounding box of text.
func (fc *Faces) Measure(text string, f Font) Metrics {
	face := fc.Face(f)
	if text == "" {
		m := face.Metrics()
		return Metrics{Ascent: toFloat(m.Ascent), Descent: toFloat(m.Descent)}
	}

	bounds, advance := font.BoundString(face, text)
	return Metrics{
		Width:   toFloat(advance),
		Ascent:  -toFloat(bounds.Min.Y),
		Descent: toFloat(bounds.Max.Y),
	}
}

// Close releases all cached faces.
func (fc *Faces) Close() {
	for f, face := range fc.cache {
		_ = face.Close()
		delete(fc.cache, f)
	}
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
