package assets

import (
	"context"
	"fmt"

	cldconfig "github.com/cloudinary/cloudinary-go/v2/config"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/pageza/foodies/backend/config"
	"github.com/pageza/foodies/backend/internal/logging"
)

// Eager transformation applied on upload so thumbnails are served optimized
const imageEager = "q_auto,f_auto,w_800,c_fill"

var eagerAsyncFalse = false

// CloudinaryStore uploads recipe images to a Cloudinary folder
type CloudinaryStore struct {
	uploader *uploader.API
	folder   string
}

// CloudinaryOption adjusts the Cloudinary SDK configuration before the uploader is built.
type CloudinaryOption func(*cldconfig.Configuration)

// WithUploadPrefix points the uploader at a different API host.
func WithUploadPrefix(prefix string) CloudinaryOption {
	return func(c *cldconfig.Configuration) {
		c.API.UploadPrefix = prefix
	}
}

// NewCloudinaryStore builds a store from Cloudinary credentials.
func NewCloudinaryStore(cfg config.CloudinaryConfig, opts ...CloudinaryOption) (*CloudinaryStore, error) {
	cldCfg, err := cldconfig.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("invalid cloudinary config: %w", err)
	}
	for _, opt := range opts {
		opt(cldCfg)
	}
	up, err := uploader.NewWithConfiguration(cldCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary uploader: %w", err)
	}
	return &CloudinaryStore{uploader: up, folder: cfg.Folder}, nil
}

// Upload sends the file to Cloudinary and returns its secure URL.
func (s *CloudinaryStore) Upload(ctx context.Context, localPath string) (string, error) {
	result, err := s.uploader.Upload(ctx, localPath, uploader.UploadParams{
		Folder:     s.folder,
		Eager:      imageEager,
		EagerAsync: &eagerAsyncFalse,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected upload: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("cloudinary returned no url")
	}

	logging.Ctx(ctx).Debug().Str("public_id", result.PublicID).Msg("uploaded image to cloudinary")
	return result.SecureURL, nil
}

func (s *CloudinaryStore) DeleteLocalTemp(path string) error {
	return removeTemp(path)
}
