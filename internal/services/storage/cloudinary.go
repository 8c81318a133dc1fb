// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore uploads objects to a Cloudinary folder.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore creates a store from a cloudinary:// URL.
func NewCloudinaryStore(cloudinaryURL, folder string) (*CloudinaryStore, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary URL is required")
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryStore{cld: cld, folder: strings.Trim(folder, "/")}, nil
}

// Upload stores data under folder/objectPath without extension and returns
// the secure URL.
func (s *CloudinaryStore) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	clean, err := cleanPath(objectPath)
	if err != nil {
		return "", err
	}

	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:       PublicID(clean),
		Folder:         s.folder,
		Overwrite:      api.Bool(true),
		Invalidate:     api.Bool(true),
		UniqueFilename: api.Bool(false),
		ResourceType:   resourceType(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %q: %w", clean, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("uploading %q: %s", clean, result.Error.Message)
	}

	if result.SecureURL != "" {
		return ForceHTTPS(result.SecureURL), nil
	}
	return ForceHTTPS(result.URL), nil
}

// PublicID strips the file extension from an object path.
func PublicID(objectPath string) string {
	return strings.TrimSuffix(objectPath, path.Ext(objectPath))
}

// ForceHTTPS rewrites http:// URLs to https://.
func ForceHTTPS(u string) string {
	if rest, ok := strings.CutPrefix(u, "http://"); ok {
		return "https://" + rest
	}
	return u
}

func resourceType(contentType string) string {
	if strings.HasPrefix(contentType, "image/") {
		return "image"
	}
	return "raw"
}
