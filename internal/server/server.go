package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/foodies/backend/config"
	"github.com/pageza/foodies/backend/internal/assets"
	"github.com/pageza/foodies/backend/internal/database"
	"github.com/pageza/foodies/backend/internal/logging"
	"github.com/pageza/foodies/backend/internal/middleware"
	"github.com/pageza/foodies/backend/internal/router"
	"github.com/pageza/foodies/backend/internal/service"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// Option customizes the server's collaborators
type Option func(*options)

type options struct {
	assets    assets.Store
	redis     *redis.Client
	tokens    middleware.TokenValidator
	uploadDir string
}

// WithAssetStore sets the store recipe images are uploaded to
func WithAssetStore(s assets.Store) Option {
	return func(o *options) { o.assets = s }
}

// WithRedis enables write rate limiting backed by client
func WithRedis(client *redis.Client) Option {
	return func(o *options) { o.redis = client }
}

// WithTokenValidator replaces the JWT validator built from the config
func WithTokenValidator(v middleware.TokenValidator) Option {
	return func(o *options) { o.tokens = v }
}

// WithUploadDir sets where multipart images are staged
func WithUploadDir(dir string) Option {
	return func(o *options) { o.uploadDir = dir }
}

// New wires the services and routes around db
func New(cfg *config.Config, db *gorm.DB, opts ...Option) *Server {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.tokens == nil {
		o.tokens = middleware.NewJWTValidator(cfg.JWTSecret).WithSessionCheck(db)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	query := service.NewRecipeQueryService(db)
	engine := router.SetupRouter(router.Deps{
		Query:        query,
		Command:      service.NewRecipeCommandService(db, o.assets),
		Favorites:    service.NewFavoriteService(db),
		Follows:      service.NewFollowService(db),
		Catalog:      service.NewCatalogService(db),
		Testimonials: service.NewTestimonialService(db),
		Tokens:       o.tokens,
		RateLimiter:  middleware.NewWriteRateLimiter(o.redis, cfg.RateLimit, cfg.RateLimitWindow),
		Health: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
		CORSOrigins: cfg.CORSOrigins,
		UploadDir:   o.uploadDir,
	})

	return &Server{
		router: engine,
		db:     db,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the routes, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	logging.Info().Str("addr", s.http.Addr).Msg("server starting")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
