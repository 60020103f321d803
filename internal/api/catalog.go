package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/foodies/backend/internal/service"
)

type categoryRecipesQuery struct {
	PageQuery
	Area       string `form:"area"`
	Ingredient string `form:"ingredient"`
}

type searchQuery struct {
	PageQuery
	Search string `form:"search"`
}

// CatalogHandler serves categories, areas and ingredients
type CatalogHandler struct {
	catalog service.ICatalogService
	query   service.IRecipeQueryService
}

func NewCatalogHandler(catalog service.ICatalogService, query service.IRecipeQueryService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, query: query}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup, optional gin.HandlerFunc) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/:category/recipes", optional, h.ListCategoryRecipes)
		categories.GET("/:category/filters", h.ListCategoryFilters)
	}
	router.GET("/areas", h.ListAreas)
	router.GET("/ingredients", h.ListIngredients)
}

// ListCategories handles GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Categories retrieved successfully", categories)
}

// ListCategoryRecipes handles GET /categories/:category/recipes. The category is an id
// or an exact, case-insensitive name.
func (h *CatalogHandler) ListCategoryRecipes(c *gin.Context) {
	var q categoryRecipesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	filter := service.RecipeFilter{
		Category:   c.Param("category"),
		Area:       q.Area,
		Ingredient: q.Ingredient,
		Match:      service.MatchEquals,
	}
	page, err := h.query.ListCatalog(c.Request.Context(), filter, q.pagination(service.DefaultCategoryLimit), viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Category recipes retrieved successfully", toRecipePageView(page))
}

// ListCategoryFilters handles GET /categories/:category/filters
func (h *CatalogHandler) ListCategoryFilters(c *gin.Context) {
	filter := service.RecipeFilter{Category: c.Param("category"), Match: service.MatchEquals}
	filters, err := h.query.ListDistinctFilters(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Category filters retrieved successfully", filters)
}

// ListAreas handles GET /areas
func (h *CatalogHandler) ListAreas(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondStatus(c, http.StatusBadRequest, err.Error())
		return
	}
	p := q.pagination(service.DefaultSearchLimit)

	areas, err := h.catalog.ListAreas(c.Request.Context(), q.Search, p.Limit, p.Offset())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Areas retrieved successfully", toListingView(areas, p))
}

// ListIngredients handles GET /ingredients
func (h *CatalogHandler) ListIngredients(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondStatus(c, http.StatusBadRequest, err.Error())
		return
	}
	p := q.pagination(service.DefaultSearchLimit)

	ingredients, err := h.catalog.ListIngredients(c.Request.Context(), q.Search, p.Limit, p.Offset())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Ingredients retrieved successfully", toListingView(ingredients, p))
}
