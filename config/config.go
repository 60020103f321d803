package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration. DBDriver is "postgres" or "sqlite".
	DBDriver     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	SQLitePath   string
	MigrationDir string

	// Redis configuration, used for write-route rate limiting
	RedisHost       string
	RedisPort       string
	RedisPassword   string
	RedisDB         int
	RedisURL        string
	RateLimit       int
	RateLimitWindow time.Duration

	// JWT configuration
	JWTSecret string

	// Asset store: "s3", "cloudinary" or "" for none
	AssetStore string
	S3Bucket   string
	AWSRegion  string
	Cloudinary CloudinaryConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// CloudinaryConfig holds Cloudinary credentials
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Environment: env}

	// Load configuration based on environment
	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN returns the lib/pq connection string for the postgres store
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// loadCIConfig loads configuration for CI using only environment variables.
// Secrets come from the TEST_ prefixed GitHub Actions secrets.
func loadCIConfig(cfg *Config) {
	loadShared(cfg, os.Getenv)
	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	if url := os.Getenv("TEST_REDIS_URL"); url != "" {
		cfg.RedisURL = url
	}
}

// loadDevConfig loads configuration for development: Docker secrets when present,
// then environment variables, then local defaults.
func loadDevConfig(cfg *Config) {
	get := func(key string) string {
		if v := readSecret(strings.ToLower(key)); v != "" {
			return v
		}
		return os.Getenv(key)
	}
	loadShared(cfg, get)
	cfg.DBPassword = withDefault(get("DB_PASSWORD"), "postgres")
	cfg.JWTSecret = withDefault(get("JWT_SECRET"), "your-secret-key")
	cfg.RedisPassword = get("REDIS_PASSWORD")
}

// loadProdConfig loads configuration for production. Secrets are read ONLY from Docker
// secrets; plain settings may come from the environment.
func loadProdConfig(cfg *Config) {
	get := func(key string) string {
		if v := readSecret(strings.ToLower(key)); v != "" {
			return v
		}
		return os.Getenv(key)
	}
	loadShared(cfg, get)
	cfg.DBPassword = readSecret("db_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.Cloudinary.APISecret = readSecret("cloudinary_api_secret")
}

func loadShared(cfg *Config, get func(string) string) {
	cfg.ServerPort = withDefault(get("SERVER_PORT"), "8080")
	cfg.ServerHost = withDefault(get("SERVER_HOST"), "0.0.0.0")
	cfg.CORSOrigins = splitList(withDefault(get("CORS_ORIGINS"), "http://localhost:5173"))

	cfg.DBDriver = withDefault(get("DB_DRIVER"), "postgres")
	cfg.DBHost = withDefault(get("DB_HOST"), "localhost")
	cfg.DBPort = withDefault(get("DB_PORT"), "5432")
	cfg.DBUser = withDefault(get("DB_USER"), "postgres")
	cfg.DBName = withDefault(get("DB_NAME"), "foodies")
	cfg.DBSSLMode = withDefault(get("DB_SSL_MODE"), "disable")
	cfg.SQLitePath = withDefault(get("SQLITE_PATH"), "foodies.db")
	cfg.MigrationDir = withDefault(get("MIGRATIONS_DIR"), "migrations")

	cfg.RedisHost = get("REDIS_HOST")
	cfg.RedisPort = withDefault(get("REDIS_PORT"), "6379")
	cfg.RedisURL = get("REDIS_URL")
	cfg.RedisDB = 0 // This is a constant, not a secret
	cfg.RateLimit = atoiDefault(get("RATE_LIMIT"), 60)
	cfg.RateLimitWindow = durationDefault(get("RATE_LIMIT_WINDOW"), time.Minute)

	cfg.AssetStore = get("ASSET_STORE")
	cfg.S3Bucket = withDefault(get("S3_BUCKET_NAME"), "foodies-recipe-images")
	cfg.AWSRegion = withDefault(get("AWS_REGION"), "us-east-1")
	cfg.Cloudinary = CloudinaryConfig{
		CloudName: get("CLOUDINARY_CLOUD_NAME"),
		APIKey:    get("CLOUDINARY_API_KEY"),
		APISecret: get("CLOUDINARY_API_SECRET"),
		Folder:    withDefault(get("CLOUDINARY_FOLDER"), "foodies/recipes"),
	}

	cfg.LogLevel = withDefault(get("LOG_LEVEL"), "info")
	cfg.LogFormat = withDefault(get("LOG_FORMAT"), "json")
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durationDefault(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
