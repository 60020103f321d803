package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pageza/foodies/backend/internal/models"
	"gorm.io/gorm"
)

// RecipeQueryService serves every read path over recipes. Each listing owns its query;
// they share only the eager-load shape.
type RecipeQueryService struct {
	db *gorm.DB
}

// NewRecipeQueryService creates a new RecipeQueryService instance
func NewRecipeQueryService(db *gorm.DB) *RecipeQueryService {
	return &RecipeQueryService{db: db}
}

// DistinctFilters lists the area and ingredient names present among matching recipes.
type DistinctFilters struct {
	Areas       []string `json:"areas"`
	Ingredients []string `json:"ingredients"`
}

// withRecipeAssociations loads the fixed result shape of a recipe: the owner's public
// fields, category, area and ingredient measures with their ingredient.
func withRecipeAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Owner", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "avatar")
		}).
		Preload("Category").
		Preload("Area").
		Preload("Ingredients", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("recipe_ingredients.id ASC")
		}).
		Preload("Ingredients.Ingredient")
}

// ListCatalog returns the filtered catalog, newest recipe first.
func (s *RecipeQueryService) ListCatalog(ctx context.Context, filter RecipeFilter, p Pagination, viewerID *uint) (*RecipePage, error) {
	preds := ComposeFilter(filter)

	var total int64
	if err := applyPredicates(s.db.WithContext(ctx).Model(&models.Recipe{}), preds).Count(&total).Error; err != nil {
		return nil, storageErr("count catalog", err)
	}

	var recipes []models.Recipe
	if total > 0 {
		err := withRecipeAssociations(applyPredicates(s.db.WithContext(ctx), preds)).
			Order("recipes.id DESC").
			Limit(p.Limit).
			Offset(p.Offset()).
			Find(&recipes).Error
		if err != nil {
			return nil, storageErr("list catalog", err)
		}
	}

	if err := s.markFavorites(ctx, recipes, viewerID); err != nil {
		return nil, err
	}
	return newRecipePage(recipes, total, p), nil
}

// ListOwnedBy returns the recipes created by ownerID, newest first.
func (s *RecipeQueryService) ListOwnedBy(ctx context.Context, ownerID uint, p Pagination) (*RecipePage, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("owner_id = ?", ownerID).Count(&total).Error; err != nil {
		return nil, storageErr("count owned recipes", err)
	}

	var recipes []models.Recipe
	if total > 0 {
		err := withRecipeAssociations(s.db.WithContext(ctx)).
			Where("recipes.owner_id = ?", ownerID).
			Order("recipes.id DESC").
			Limit(p.Limit).
			Offset(p.Offset()).
			Find(&recipes).Error
		if err != nil {
			return nil, storageErr("list owned recipes", err)
		}
	}
	return newRecipePage(recipes, total, p), nil
}

// ListFavoritesOf returns the recipes userID marked as favorite, most recently
// favorited first.
func (s *RecipeQueryService) ListFavoritesOf(ctx context.Context, userID uint, p Pagination) (*RecipePage, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, storageErr("count favorites", err)
	}

	var recipes []models.Recipe
	if total > 0 {
		err := withRecipeAssociations(s.db.WithContext(ctx)).
			Select("recipes.*").
			Joins("JOIN favorites ON favorites.recipe_id = recipes.id AND favorites.user_id = ?", userID).
			Order("favorites.created_at DESC, favorites.id DESC").
			Limit(p.Limit).
			Offset(p.Offset()).
			Find(&recipes).Error
		if err != nil {
			return nil, storageErr("list favorites", err)
		}
	}

	for i := range recipes {
		fav := true
		recipes[i].IsFavorite = &fav
	}
	return newRecipePage(recipes, total, p), nil
}

type popularityRow struct {
	ID             uint
	FavoritesCount int64
}

// ListPopular ranks every recipe by its number of favorites. Ties are broken by
// ascending id so the order is stable across pages.
func (s *RecipeQueryService) ListPopular(ctx context.Context, p Pagination, viewerID *uint) (*RecipePage, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Count(&total).Error; err != nil {
		return nil, storageErr("count recipes", err)
	}

	var ranked []popularityRow
	err := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Select("recipes.id AS id, COUNT(favorites.id) AS favorites_count").
		Joins("LEFT JOIN favorites ON favorites.recipe_id = recipes.id").
		Group("recipes.id").
		Order("favorites_count DESC, recipes.id ASC").
		Limit(p.Limit).
		Offset(p.Offset()).
		Scan(&ranked).Error
	if err != nil {
		return nil, storageErr("rank recipes", err)
	}
	if len(ranked) == 0 {
		return newRecipePage(nil, total, p), nil
	}

	ids := make([]uint, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
	}
	var hydrated []models.Recipe
	if err := withRecipeAssociations(s.db.WithContext(ctx)).Where("recipes.id IN ?", ids).Find(&hydrated).Error; err != nil {
		return nil, storageErr("load popular recipes", err)
	}

	byID := make(map[uint]models.Recipe, len(hydrated))
	for _, r := range hydrated {
		byID[r.ID] = r
	}
	recipes := make([]models.Recipe, 0, len(ranked))
	for _, row := range ranked {
		r, ok := byID[row.ID]
		if !ok {
			// deleted between ranking and hydration
			continue
		}
		count := row.FavoritesCount
		r.FavoritesCount = &count
		recipes = append(recipes, r)
	}

	if err := s.markFavorites(ctx, recipes, viewerID); err != nil {
		return nil, err
	}
	return newRecipePage(recipes, total, p), nil
}

// GetByID returns a single recipe in its full shape.
func (s *RecipeQueryService) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	return getRecipe(withRecipeAssociations(s.db.WithContext(ctx)), id)
}

func getRecipe(db *gorm.DB, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := db.Where("recipes.id = ?", id).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe %d", ErrNotFound, id)
		}
		return nil, storageErr("get recipe", err)
	}
	return &recipe, nil
}

// ListDistinctFilters returns the distinct area and ingredient names used by the recipes
// matching filter, de-duplicated and sorted case-insensitively.
func (s *RecipeQueryService) ListDistinctFilters(ctx context.Context, filter RecipeFilter) (*DistinctFilters, error) {
	preds := ComposeFilter(filter)

	var areas []string
	err := applyPredicates(
		s.db.WithContext(ctx).
			Model(&models.Area{}).
			Distinct("areas.name").
			Joins("JOIN recipes ON recipes.area_id = areas.id"),
		preds,
	).Pluck("areas.name", &areas).Error
	if err != nil {
		return nil, storageErr("list areas", err)
	}

	var ingredients []string
	err = applyPredicates(
		s.db.WithContext(ctx).
			Model(&models.Ingredient{}).
			Distinct("ingredients.name").
			Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
			Joins("JOIN recipes ON recipes.id = recipe_ingredients.recipe_id"),
		preds,
	).Pluck("ingredients.name", &ingredients).Error
	if err != nil {
		return nil, storageErr("list ingredients", err)
	}

	return &DistinctFilters{
		Areas:       uniqueFold(areas),
		Ingredients: uniqueFold(ingredients),
	}, nil
}

// markFavorites sets IsFavorite on each recipe with one lookup for the whole page.
func (s *RecipeQueryService) markFavorites(ctx context.Context, recipes []models.Recipe, viewerID *uint) error {
	if viewerID == nil || len(recipes) == 0 {
		return nil
	}

	ids := make([]uint, len(recipes))
	for i := range recipes {
		ids[i] = recipes[i].ID
	}

	var favorited []uint
	err := s.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id IN ?", *viewerID, ids).
		Pluck("recipe_id", &favorited).Error
	if err != nil {
		return storageErr("load viewer favorites", err)
	}

	set := make(map[uint]struct{}, len(favorited))
	for _, id := range favorited {
		set[id] = struct{}{}
	}
	for i := range recipes {
		_, ok := set[recipes[i].ID]
		recipes[i].IsFavorite = &ok
	}
	return nil
}

// uniqueFold drops case-insensitive duplicates, keeping the first spelling, and sorts
// the result case-insensitively.
func uniqueFold(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
