package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pageza/foodies/backend/config"
	"github.com/pageza/foodies/backend/internal/database"
	"github.com/pageza/foodies/backend/internal/logging"
)

func main() {
	dir := flag.String("dir", "", "migrations directory (defaults to MIGRATIONS_DIR)")
	flag.Parse()

	if err := run(*dir); err != nil {
		logging.Error().Err(err).Msg("migration failed")
		os.Exit(1)
	}
}

func run(dir string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if dir != "" {
		cfg.MigrationDir = dir
	}

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, cfg.MigrationDir); err != nil {
		return err
	}
	logging.Info().Str("driver", cfg.DBDriver).Msg("migrations applied")
	return nil
}
