// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package layout_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/brisingire/gastronomie-verzeichnis/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monoMeasurer treats every rune as Size/2 wide.
type monoMeasurer struct{}

func (monoMeasurer) Measure(text string, f layout.Font) layout.Metrics {
	return layout.Metrics{
		Width:   float64(utf8.RuneCountInString(text)) * f.Size / 2,
		Ascent:  f.Size * 0.8,
		Descent: f.Size * 0.2,
	}
}

func TestWrap(t *testing.T) {
	m := monoMeasurer{}
	f := layout.Regular(10) // 5 per rune

	tests := []struct {
		name     string
		text     string
		maxWidth float64
		expected []string
	}{
		{"fits on one line", "a bb ccc", 100, []string{"a bb ccc"}},
		{"breaks greedily", "aaaa bbbb cccc", 40, []string{"aaaa", "bbbb", "cccc"}},
		{"exact fit stays on line", "aaaa bbbb", 45, []string{"aaaa bbbb"}},
		{"oversized word alone", "x verylongword y", 30, []string{"x", "verylongword", "y"}},
		{"empty text", "", 100, nil},
		{"collapses whitespace", "  a   b ", 100, []string{"a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, layout.Wrap(m, tt.text, tt.maxWidth, f))
		})
	}
}

func TestWrap_RoundTrip(t *testing.T) {
	m := monoMeasurer{}
	f := layout.Regular(18)
	text := "Der vorliegende Testbericht fokussiert sich auf den Betrieb „Zur Linde“. " +
		"Unter Berücksichtigung eines vielseitigen Angebots wurde eine detaillierte Prüfung durchgeführt."

	for _, width := range []float64{250, 400, 1080} {
		lines := layout.Wrap(m, text, width, f)
		require.NotEmpty(t, lines)
		assert.Equal(t, text, strings.Join(lines, " "), "width %v", width)
		for _, line := range lines {
			assert.LessOrEqual(t, m.Measure(line, f).Width, width)
		}
	}
}

func TestShrinkToFit(t *testing.T) {
	m := monoMeasurer{}

	t.Run("fitting text keeps start size", func(t *testing.T) {
		f, metrics := layout.ShrinkToFit(m, "Zur Linde", 1160, layout.Regular(40), 2)
		assert.InDelta(t, 40, f.Size, 0.001)
		assert.InDelta(t, 9*20, metrics.Width, 0.001)
	})

	t.Run("long text shrinks until it fits", func(t *testing.T) {
		text := strings.Repeat("x", 100) // 100 * size/2
		f, metrics := layout.ShrinkToFit(m, text, 1160, layout.Regular(40), 2)
		assert.InDelta(t, 22, f.Size, 0.001)
		assert.LessOrEqual(t, metrics.Width, 1160.0)
	})

	t.Run("stops at the floor", func(t *testing.T) {
		text := strings.Repeat("x", 10000)
		f, metrics := layout.ShrinkToFit(m, text, 1160, layout.Regular(40), 2)
		assert.InDelta(t, layout.MinFontSize, f.Size, 0.001)
		assert.Greater(t, metrics.Width, 1160.0)
	})

	t.Run("odd steps clamp to the floor", func(t *testing.T) {
		text := strings.Repeat("x", 10000)
		f, _ := layout.ShrinkToFit(m, text, 10, layout.Regular(9), 2)
		assert.InDelta(t, layout.MinFontSize, f.Size, 0.001)
	})

	t.Run("keeps weight", func(t *testing.T) {
		f, _ := layout.ShrinkToFit(m, strings.Repeat("x", 100), 100, layout.Bold(40), 2)
		assert.True(t, f.Bold)
	})
}

func TestCursor_Advance(t *testing.T) {
	c := layout.Cursor{Y: 110}

	assert.InDelta(t, 134, c.Advance(24), 0.001)
	assert.InDelta(t, 162, c.Advance(28), 0.001)
	assert.InDelta(t, 162, c.Y, 0.001)
}

func TestCenterX(t *testing.T) {
	assert.InDelta(t, 500, layout.CenterX(0, 1200, 200), 0.001)
	assert.InDelta(t, 60, layout.CenterX(40, 180, 100), 0.001)
}
