package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pageza/foodies/backend/config"
	"github.com/pageza/foodies/backend/internal/middleware"
	"github.com/pageza/foodies/backend/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:      "127.0.0.1",
		ServerPort:      "0",
		JWTSecret:       "test-secret",
		RateLimit:       10,
		RateLimitWindow: time.Minute,
	}
}

func TestNew(t *testing.T) {
	td := testdb.NewSQLite(t)

	server := New(testConfig(), td.DB)
	require.NotNil(t, server)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, http.StatusOK, body["status"])
}

func TestNewChecksStoredSession(t *testing.T) {
	td := testdb.NewSQLite(t)
	user := td.Fixtures(t).User("Ana")

	cfg := testConfig()
	server := New(cfg, td.DB)

	token, err := middleware.NewJWTValidator(cfg.JWTSecret).GenerateToken(user.ID, time.Hour)
	require.NoError(t, err)

	get := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/recipes/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		server.Handler().ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, get(), "token not stored for the user")

	require.NoError(t, td.DB.Model(user).Update("token", token).Error)
	assert.Equal(t, http.StatusOK, get())
}

func TestStartAndShutdown(t *testing.T) {
	td := testdb.NewSQLite(t)
	server := New(testConfig(), td.DB)

	done := make(chan error, 1)
	go func() { done <- server.Start() }()

	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
