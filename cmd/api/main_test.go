package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func devEnv(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "development")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "disabled")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "api.db"))
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("ASSET_STORE", "")
}

func TestRunReturnsConfigErrors(t *testing.T) {
	devEnv(t)
	t.Setenv("DB_DRIVER", "mysql")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration")
}

func TestRunReturnsListenErrors(t *testing.T) {
	devEnv(t)
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "not-a-port")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error")
}
