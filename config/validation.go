package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBName == "" {
			add("DB_HOST", "postgres host, port and name are required")
		}
		if cfg.DBPassword == "" {
			if cfg.Environment == CI {
				add("DB_PASSWORD", "TEST_DB_PASSWORD environment variable is required in CI environment")
			} else {
				add("db_password", "secret is required")
			}
		}
	case "sqlite":
		if cfg.Environment == Production {
			add("DB_DRIVER", "sqlite is not supported in production")
		}
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required for the sqlite driver")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unknown driver %q", cfg.DBDriver))
	}

	if cfg.JWTSecret == "" {
		add("jwt_secret", "secret is required")
	}

	switch cfg.AssetStore {
	case "", "s3":
		if cfg.AssetStore == "s3" && cfg.S3Bucket == "" {
			add("S3_BUCKET_NAME", "is required for the s3 asset store")
		}
	case "cloudinary":
		c := cfg.Cloudinary
		if c.CloudName == "" || c.APIKey == "" || c.APISecret == "" {
			add("CLOUDINARY_*", "cloud name, api key and api secret are required")
		}
	default:
		add("ASSET_STORE", fmt.Sprintf("unknown asset store %q", cfg.AssetStore))
	}

	if cfg.RateLimit <= 0 {
		add("RATE_LIMIT", "must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
