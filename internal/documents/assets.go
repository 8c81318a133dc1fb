// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package documents

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"log/slog"
	"os"

	"github.com/brisingire/gastronomie-verzeichnis/internal/config"
	"github.com/brisingire/gastronomie-verzeichnis/internal/layout"
)

// Assets holds the fonts and images shared by all renders.
type Assets struct {
	Fonts     *layout.FontSet
	Logo      image.Image
	Signature image.Image
}

// LoadAssets loads fonts and images once at startup. Configured fonts that
// cannot be loaded are an error; missing images are skipped.
func LoadAssets(cfg config.AssetsConfig) (*Assets, error) {
	var (
		fonts *layout.FontSet
		err   error
	)
	if cfg.FontRegular == "" && cfg.FontBold == "" {
		fonts, err = layout.DefaultFontSet()
	} else {
		fonts, err = layout.LoadFontSet(cfg.FontRegular, cfg.FontBold)
	}
	if err != nil {
		return nil, fmt.Errorf("loading fonts: %w", err)
	}

	return &Assets{
		Fonts:     fonts,
		Logo:      loadOptionalImage("logo", cfg.Logo),
		Signature: loadOptionalImage("signature", cfg.Signature),
	}, nil
}

func loadOptionalImage(kind, path string) image.Image {
	if path == "" {
		return nil
	}

	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		slog.Debug("image not available", "kind", kind, "path", path, "error", err)
		return nil
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		slog.Warn("failed to decode image", "kind", kind, "path", path, "error", err)
		return nil
	}
	return img
}

// fitWithin scales w×h to fit inside maxW×maxH keeping the aspect ratio.
func fitWithin(img image.Image, maxW, maxH float64) (float64, float64) {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if w == 0 || h == 0 {
		return 0, 0
	}
	scale := min(maxW/w, maxH/h)
	return w * scale, h * scale
}

// scaleToWidth scales img to width w keeping the aspect ratio.
func scaleToWidth(img image.Image, w float64) (float64, float64) {
	b := img.Bounds()
	if b.Dx() == 0 {
		return 0, 0
	}
	return w, float64(b.Dy()) * w / float64(b.Dx())
}
