package assets

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pageza/foodies/backend/config"
	"github.com/pageza/foodies/backend/internal/logging"
)

// KeyPrefix is the S3 key prefix of recipe images.
const KeyPrefix = "recipe-images/"

// S3Store uploads recipe images to an S3 bucket
type S3Store struct {
	s3Config *config.S3Config
}

// NewS3Store creates a new S3Store instance
func NewS3Store(s3Config *config.S3Config) *S3Store {
	return &S3Store{s3Config: s3Config}
}

// Upload stores the file under a random key and returns its public URL.
func (s *S3Store) Upload(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(localPath))
	key := KeyPrefix + uuid.NewString() + ext
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := s.s3Config.PublicURL(key)
	logging.Ctx(ctx).Debug().Str("key", key).Str("bucket", s.s3Config.BucketName).Msg("uploaded image to s3")
	return publicURL, nil
}

func (s *S3Store) DeleteLocalTemp(path string) error {
	return removeTemp(path)
}
