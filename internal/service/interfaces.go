package service

import (
	"context"

	"github.com/pageza/foodies/backend/internal/models"
)

// IRecipeQueryService defines the interface for recipe read operations
type IRecipeQueryService interface {
	ListCatalog(ctx context.Context, filter RecipeFilter, p Pagination, viewerID *uint) (*RecipePage, error)
	ListOwnedBy(ctx context.Context, ownerID uint, p Pagination) (*RecipePage, error)
	ListFavoritesOf(ctx context.Context, userID uint, p Pagination) (*RecipePage, error)
	ListPopular(ctx context.Context, p Pagination, viewerID *uint) (*RecipePage, error)
	GetByID(ctx context.Context, id uint) (*models.Recipe, error)
	ListDistinctFilters(ctx context.Context, filter RecipeFilter) (*DistinctFilters, error)
}

// IRecipeCommandService defines the interface for recipe write operations
type IRecipeCommandService interface {
	CreateRecipe(ctx context.Context, ownerID uint, in CreateRecipeInput, imagePath string) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, recipeID, requesterID uint) (*models.Recipe, error)
}

// IFavoriteService defines the interface for favorite toggling
type IFavoriteService interface {
	AddFavorite(ctx context.Context, userID, recipeID uint) (*models.Favorite, error)
	RemoveFavorite(ctx context.Context, userID, recipeID uint) (*models.Favorite, error)
}

// IFollowService defines the interface for the follow relation
type IFollowService interface {
	Follow(ctx context.Context, followerID, followingID uint) error
	Unfollow(ctx context.Context, followerID, followingID uint) error
	Counts(ctx context.Context, userID uint) (*FollowCounts, error)
}

// ICatalogService defines the interface for reference data lookups
type ICatalogService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListAreas(ctx context.Context, search string, limit, offset int) (*Listing[models.Area], error)
	ListIngredients(ctx context.Context, search string, limit, offset int) (*Listing[models.Ingredient], error)
}

// ITestimonialService defines the interface for the testimonial listing
type ITestimonialService interface {
	ListTestimonials(ctx context.Context, p Pagination) (*Listing[models.Testimonial], error)
}

var (
	_ IRecipeQueryService   = (*RecipeQueryService)(nil)
	_ IRecipeCommandService = (*RecipeCommandService)(nil)
	_ IFavoriteService      = (*FavoriteService)(nil)
	_ IFollowService        = (*FollowService)(nil)
	_ ICatalogService       = (*CatalogService)(nil)
	_ ITestimonialService   = (*TestimonialService)(nil)
)
