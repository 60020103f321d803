package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pageza/foodies/backend/config"
	"github.com/pageza/foodies/backend/internal/assets"
	"github.com/pageza/foodies/backend/internal/database"
	"github.com/pageza/foodies/backend/internal/logging"
	"github.com/pageza/foodies/backend/internal/server"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

// run returns instead of exiting so the deferred closes always execute.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logging.Warn().Err(err).Msg("failed to close database")
		}
	}()

	if err := database.RunMigrations(db, cfg.MigrationDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	rdb, err := database.NewRedisClient(cfg)
	if err != nil {
		logging.Warn().Err(err).Msg("redis unavailable, write rate limiting disabled")
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	store, err := assets.New(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to configure asset store: %w", err)
	}

	srv := server.New(cfg, db,
		server.WithAssetStore(store),
		server.WithRedis(rdb),
	)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-quit:
		logging.Info().Str("signal", sig.String()).Msg("received signal")
	}

	logging.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logging.Info().Msg("server stopped")
	return nil
}
