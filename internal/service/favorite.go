package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pageza/foodies/backend/internal/database"
	"github.com/pageza/foodies/backend/internal/logging"
	"github.com/pageza/foodies/backend/internal/models"
	"gorm.io/gorm"
)

// FavoriteService adds and removes (user, recipe) favorite pairs.
type FavoriteService struct {
	db *gorm.DB
}

// NewFavoriteService creates a new FavoriteService instance
func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// AddFavorite records recipeID as a favorite of userID. The unique (user, recipe)
// constraint is authoritative; the existence check only exits early.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID, recipeID uint) (*models.Favorite, error) {
	db := s.db.WithContext(ctx)

	var recipes int64
	if err := db.Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&recipes).Error; err != nil {
		return nil, storageErr("check recipe", err)
	}
	if recipes == 0 {
		return nil, fmt.Errorf("%w: recipe %d", ErrNotFound, recipeID)
	}

	var existing int64
	if err := db.Model(&models.Favorite{}).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&existing).Error; err != nil {
		return nil, storageErr("check favorite", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: recipe %d is already a favorite", ErrConflict, recipeID)
	}

	fav := &models.Favorite{UserID: userID, RecipeID: recipeID}
	if err := db.Create(fav).Error; err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return nil, fmt.Errorf("%w: recipe %d is already a favorite", ErrConflict, recipeID)
		case database.IsForeignKeyViolation(err):
			return nil, fmt.Errorf("%w: user %d or recipe %d", ErrNotFound, userID, recipeID)
		default:
			return nil, storageErr("add favorite", err)
		}
	}

	logging.Ctx(ctx).Debug().Uint("user_id", userID).Uint("recipe_id", recipeID).Msg("favorite added")
	return fav, nil
}

// RemoveFavorite deletes the (user, recipe) pair and returns the removed row.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, recipeID uint) (*models.Favorite, error) {
	db := s.db.WithContext(ctx)

	var fav models.Favorite
	err := db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&fav).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: recipe %d is not a favorite", ErrNotFound, recipeID)
	}
	if err != nil {
		return nil, storageErr("find favorite", err)
	}

	res := db.Delete(&models.Favorite{}, fav.ID)
	if res.Error != nil {
		return nil, storageErr("remove favorite", res.Error)
	}
	// lost a race with a concurrent delete
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: recipe %d is not a favorite", ErrNotFound, recipeID)
	}

	logging.Ctx(ctx).Debug().Uint("user_id", userID).Uint("recipe_id", recipeID).Msg("favorite removed")
	return &fav, nil
}
