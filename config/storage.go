package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds S3 client and bucket info
type S3Config struct {
	Client     *s3.Client
	BucketName string
	Region     string
}

// NewS3Config initializes the S3 client from the shared AWS configuration chain
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewS3ConfigFromAWS(awsCfg, cfg.S3Bucket), nil
}

// NewS3ConfigFromAWS builds an S3Config from an already resolved aws.Config.
// Extra options are applied to the S3 client, e.g. a custom endpoint.
func NewS3ConfigFromAWS(awsCfg aws.Config, bucket string, optFns ...func(*s3.Options)) *S3Config {
	return &S3Config{
		Client:     s3.NewFromConfig(awsCfg, optFns...),
		BucketName: bucket,
		Region:     awsCfg.Region,
	}
}

// PublicURL returns the public URL of an object in the bucket
func (s *S3Config) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.BucketName, key)
}
