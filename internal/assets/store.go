// Package assets stores recipe images outside the database and returns their public URL.
package assets

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pageza/foodies/backend/config"
)

// ErrNotConfigured is returned by Upload when no asset store is configured.
var ErrNotConfigured = errors.New("asset store not configured")

// Store uploads local files and cleans up the temp copies left by multipart uploads.
type Store interface {
	Upload(ctx context.Context, localPath string) (string, error)
	DeleteLocalTemp(path string) error
}

// New builds the store selected by cfg.AssetStore.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.AssetStore {
	case "s3":
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewS3Store(s3cfg), nil
	case "cloudinary":
		return NewCloudinaryStore(cfg.Cloudinary)
	case "", "none":
		return NoopStore{}, nil
	default:
		return nil, fmt.Errorf("unsupported asset store %q", cfg.AssetStore)
	}
}

// NoopStore rejects uploads but still removes temp files.
type NoopStore struct{}

func (NoopStore) Upload(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

func (NoopStore) DeleteLocalTemp(path string) error {
	return removeTemp(path)
}

// removeTemp deletes path. A file that is already gone is not an error.
func removeTemp(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove temp file: %w", err)
	}
	return nil
}
