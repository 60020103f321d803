package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/pageza/foodies/backend/internal/api"
	"github.com/pageza/foodies/backend/internal/middleware"
	"github.com/pageza/foodies/backend/internal/service"
)

// Deps are the collaborators the routes are built from
type Deps struct {
	Query        service.IRecipeQueryService
	Command      service.IRecipeCommandService
	Favorites    service.IFavoriteService
	Follows      service.IFollowService
	Catalog      service.ICatalogService
	Testimonials service.ITestimonialService
	Tokens       middleware.TokenValidator
	RateLimiter  *middleware.RateLimiter
	Health       func(ctx context.Context) error
	CORSOrigins  []string
	UploadDir    string
}

// SetupRouter configures the application routes
func SetupRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(), middleware.Recovery())
	router.Use(middleware.CORS(deps.CORSOrigins))

	auth := middleware.Authenticate(deps.Tokens)
	optional := middleware.OptionalAuthenticate(deps.Tokens)
	var writes gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if deps.RateLimiter != nil {
		writes = deps.RateLimiter.Middleware()
	}

	v1 := router.Group("/api")
	v1.GET("/health", api.Health(deps.Health))

	api.NewRecipeHandler(deps.Query, deps.Command, deps.Favorites, deps.UploadDir).
		RegisterRoutes(v1, auth, optional, writes)
	api.NewCatalogHandler(deps.Catalog, deps.Query).
		RegisterRoutes(v1, optional)
	api.NewUserHandler(deps.Follows).
		RegisterRoutes(v1, auth, writes)
	api.NewTestimonialHandler(deps.Testimonials).
		RegisterRoutes(v1)

	return router
}
