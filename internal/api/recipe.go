package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pageza/foodies/backend/internal/middleware"
	"github.com/pageza/foodies/backend/internal/service"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

type catalogQuery struct {
	PageQuery
	Category   string `form:"category"`
	Area       string `form:"area"`
	Ingredient string `form:"ingredient"`
}

// RecipeHandler serves the recipe endpoints
type RecipeHandler struct {
	query     service.IRecipeQueryService
	command   service.IRecipeCommandService
	favorites service.IFavoriteService
	uploadDir string
}

// NewRecipeHandler creates a new RecipeHandler. Multipart images are staged in
// uploadDir, or the system temp dir when empty.
func NewRecipeHandler(query service.IRecipeQueryService, command service.IRecipeCommandService, favorites service.IFavoriteService, uploadDir string) *RecipeHandler {
	return &RecipeHandler{
		query:     query,
		command:   command,
		favorites: favorites,
		uploadDir: uploadDir,
	}
}

// RegisterRoutes mounts the recipe routes. auth requires a viewer, optional attaches one
// when present and writes guards every mutation.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, auth, optional, writes gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", optional, h.ListRecipes)
		recipes.GET("/popular", optional, h.ListPopular)
		recipes.GET("/me", auth, h.ListOwn)
		recipes.GET("/favorite", auth, h.ListFavorites)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", auth, writes, h.CreateRecipe)
		recipes.DELETE("/:id", auth, writes, h.DeleteRecipe)
		recipes.POST("/:id/favorite", auth, writes, h.AddFavorite)
		recipes.DELETE("/:id/favorite", auth, writes, h.RemoveFavorite)
	}
}

func viewer(c *gin.Context) *uint {
	if id, ok := middleware.ViewerID(c); ok {
		return &id
	}
	return nil
}

// ListRecipes handles GET /recipes
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var q catalogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	filter := service.RecipeFilter{Category: q.Category, Area: q.Area, Ingredient: q.Ingredient}
	page, err := h.query.ListCatalog(c.Request.Context(), filter, q.pagination(service.DefaultCatalogLimit), viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Recipes retrieved successfully", toRecipePageView(page))
}

// ListPopular handles GET /recipes/popular
func (h *RecipeHandler) ListPopular(c *gin.Context) {
	var q PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.query.ListPopular(c.Request.Context(), q.pagination(service.DefaultPopularLimit), viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Popular recipes retrieved successfully", toRecipePageView(page))
}

// ListOwn handles GET /recipes/me
func (h *RecipeHandler) ListOwn(c *gin.Context) {
	var q PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondStatus(c, http.StatusBadRequest, err.Error())
		return
	}
	userID, _ := middleware.ViewerID(c)

	page, err := h.query.ListOwnedBy(c.Request.Context(), userID, q.pagination(service.DefaultOwnedLimit))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Own recipes retrieved successfully", toRecipePageView(page))
}

// ListFavorites handles GET /recipes/favorite
func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	var q PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondStatus(c, http.StatusBadRequest, err.Error())
		return
	}
	userID, _ := middleware.ViewerID(c)

	page, err := h.query.ListFavoritesOf(c.Request.Context(), userID, q.pagination(service.DefaultOwnedLimit))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Favorite recipes retrieved successfully", toRecipePageView(page))
}

// GetRecipe handles GET /recipes/:id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.query.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Recipe retrieved successfully", toRecipeView(recipe))
}

// CreateRecipe handles POST /recipes. The body is either JSON or multipart with the
// recipe JSON in the "payload" field and an optional "thumb" image file.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, _ := middleware.ViewerID(c)

	var (
		in        service.CreateRecipeInput
		imagePath string
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := json.Unmarshal([]byte(c.PostForm("payload")), &in); err != nil {
			respondStatus(c, http.StatusBadRequest, "payload must be a JSON recipe")
			return
		}
		path, err := h.stageUpload(c)
		if err != nil {
			respondStatus(c, http.StatusBadRequest, err.Error())
			return
		}
		imagePath = path
	} else if err := c.ShouldBindJSON(&in); err != nil {
		respondStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	recipe, err := h.command.CreateRecipe(c.Request.Context(), userID, in, imagePath)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Recipe created successfully", toRecipeView(recipe))
}

// stageUpload saves the optional "thumb" file to a temp path. The service removes it.
func (h *RecipeHandler) stageUpload(c *gin.Context) (string, error) {
	file, err := c.FormFile("thumb")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("invalid thumb upload: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("thumb must be an image (jpg, png, webp or gif)")
	}

	tmp, err := os.CreateTemp(h.uploadDir, "recipe-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to stage upload: %w", err)
	}
	path := tmp.Name()
	_ = tmp.Close()

	if err := c.SaveUploadedFile(file, path); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to stage upload: %w", err)
	}
	return path, nil
}

// DeleteRecipe handles DELETE /recipes/:id
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, _ := middleware.ViewerID(c)

	recipe, err := h.command.DeleteRecipe(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Recipe deleted successfully", toRecipeView(recipe))
}

// AddFavorite handles POST /recipes/:id/favorite
func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, _ := middleware.ViewerID(c)

	fav, err := h.favorites.AddFavorite(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Recipe added to favorites", gin.H{"recipeId": fav.RecipeID, "userId": fav.UserID})
}

// RemoveFavorite handles DELETE /recipes/:id/favorite
func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, _ := middleware.ViewerID(c)

	fav, err := h.favorites.RemoveFavorite(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Recipe removed from favorites", gin.H{"recipeId": fav.RecipeID, "userId": fav.UserID})
}
