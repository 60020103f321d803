package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a dependency is reachable
type HealthChecker func(ctx context.Context) error

// Health handles GET /health
func Health(check HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if check != nil {
			if err := check(ctx); err != nil {
				respond(c, http.StatusServiceUnavailable, "database unavailable", gin.H{"database": "down"})
				return
			}
		}
		respond(c, http.StatusOK, "ok", gin.H{"database": "up"})
	}
}
