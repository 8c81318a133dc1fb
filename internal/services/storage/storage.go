// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

// Package storage uploads generated documents to a public object store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/brisingire/gastronomie-verzeichnis/internal/config"
)

// Storage drivers.
const (
	DriverLocal      = "local"
	DriverCloudinary = "cloudinary"
)

// ErrInvalidPath is returned for object paths that escape the store root.
var ErrInvalidPath = errors.New("invalid object path")

// Store uploads objects and returns their public URL. Existing objects at the
// same path are overwritten.
type Store interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error)
}

// New creates the store selected by cfg.Driver.
func New(cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", DriverLocal:
		return NewLocalStore(cfg.Dir, cfg.PublicURL)
	case DriverCloudinary:
		return NewCloudinaryStore(cfg.CloudinaryURL, cfg.Folder)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", cfg.Driver)
	}
}

// LocalStore writes objects below a directory that is served over HTTP.
type LocalStore struct {
	dir       string
	publicURL string
}

// NewLocalStore creates dir if needed.
func NewLocalStore(dir, publicURL string) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStore{dir: dir, publicURL: strings.TrimSuffix(publicURL, "/")}, nil
}

// Dir returns the root directory of the store.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Upload writes data atomically and returns publicURL/objectPath.
func (s *LocalStore) Upload(ctx context.Context, objectPath string, data []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean, err := cleanPath(objectPath)
	if err != nil {
		return "", err
	}

	target := filepath.Join(s.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return "", fmt.Errorf("creating directory for %q: %w", clean, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck,gosec // write error takes precedence
		return "", fmt.Errorf("writing %q: %w", clean, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing %q: %w", clean, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil { //nolint:gosec // served publicly
		return "", fmt.Errorf("writing %q: %w", clean, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("writing %q: %w", clean, err)
	}

	return s.publicURL + "/" + clean, nil
}

func cleanPath(objectPath string) (string, error) {
	slashed := strings.ReplaceAll(objectPath, "\\", "/")
	for _, segment := range strings.Split(slashed, "/") {
		if segment == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, objectPath)
		}
	}
	clean := strings.TrimPrefix(path.Clean("/"+slashed), "/")
	if clean == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, objectPath)
	}
	return clean, nil
}
