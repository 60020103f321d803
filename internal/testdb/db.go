// Package testdb provides migrated databases and fixtures for package tests.
package testdb

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	"github.com/pageza/foodies/backend/config"
	"github.com/pageza/foodies/backend/internal/database"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// TestDB wraps a test database instance
type TestDB struct {
	DB        *gorm.DB
	Config    *config.Config
	Container testcontainers.Container
}

// Close cleans up the test database
func (td *TestDB) Close() error {
	if err := database.Close(td.DB); err != nil {
		return err
	}
	if td.Container != nil {
		return td.Container.Terminate(context.Background())
	}
	return nil
}

// NewSQLite returns a migrated sqlite database in a per-test temp directory.
func NewSQLite(t *testing.T) *TestDB {
	t.Helper()

	cfg := &config.Config{
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "foodies.db"),
	}

	db, err := database.New(cfg)
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, MigrationsDir()))

	testDB := &TestDB{DB: db, Config: cfg}
	t.Cleanup(func() {
		if err := testDB.Close(); err != nil {
			t.Logf("Error cleaning up test database: %v", err)
		}
	})
	return testDB
}

// NewPostgres starts a postgres container and applies the SQL migrations to it.
// The test is skipped when docker is unavailable.
func NewPostgres(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}

	cfg := &config.Config{
		DBDriver:   "postgres",
		DBUser:     "test",
		DBPassword: "test",
		DBName:     "foodies_test",
		DBSSLMode:  "disable",
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     cfg.DBUser,
				"POSTGRES_PASSWORD": cfg.DBPassword,
				"POSTGRES_DB":       cfg.DBName,
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
					return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
						cfg.DBUser, cfg.DBPassword, host, port.Port(), cfg.DBName)
				}),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("failed to start postgres container: %v", err)
	}

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)
	cfg.DBHost = host
	cfg.DBPort = port.Port()

	db, err := database.New(cfg)
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, MigrationsDir()))

	testDB := &TestDB{DB: db, Config: cfg, Container: container}
	t.Cleanup(func() {
		if err := testDB.Close(); err != nil {
			t.Logf("Error cleaning up test database: %v", err)
		}
	})
	return testDB
}

// tables lists every application table, children before parents.
var tables = []string{
	"testimonials", "user_followers", "favorites", "recipe_ingredients",
	"recipes", "ingredients", "areas", "categories", "users",
}

// Reset empties every application table and restarts id sequences, so one database
// can serve several subtests that each expect a fresh catalog.
func (td *TestDB) Reset(t *testing.T) {
	t.Helper()
	if td.Config.DBDriver == "postgres" {
		require.NoError(t, td.DB.Exec("TRUNCATE "+strings.Join(tables, ", ")+" RESTART IDENTITY CASCADE").Error)
		return
	}
	for _, table := range tables {
		require.NoError(t, td.DB.Exec("DELETE FROM "+table).Error)
	}
	// sqlite_sequence only exists once an AUTOINCREMENT table has had a row
	if td.DB.Migrator().HasTable("sqlite_sequence") {
		require.NoError(t, td.DB.Exec("DELETE FROM sqlite_sequence").Error)
	}
}

// MigrationsDir returns the absolute path of the repository's migrations directory.
func MigrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}
