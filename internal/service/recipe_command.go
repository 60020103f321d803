package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pageza/foodies/backend/internal/assets"
	"github.com/pageza/foodies/backend/internal/database"
	"github.com/pageza/foodies/backend/internal/logging"
	"github.com/pageza/foodies/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngredientMeasure is one ingredient line of a new recipe.
type IngredientMeasure struct {
	IngredientID uint   `json:"ingredientId" form:"ingredientId" validate:"required"`
	Measure      string `json:"measure" form:"measure" validate:"required,max=255"`
}

// CreateRecipeInput is the payload of a new recipe. The owner comes from the viewer.
type CreateRecipeInput struct {
	Title        string              `json:"title" validate:"required,min=3,max=255"`
	Description  string              `json:"description" validate:"max=5000"`
	Instructions string              `json:"instructions" validate:"required,min=10"`
	Thumb        string              `json:"thumb" validate:"omitempty,url,max=1000"`
	Time         *int                `json:"time" validate:"omitempty,min=1"`
	CategoryID   uint                `json:"categoryId" validate:"required"`
	AreaID       *uint               `json:"areaId" validate:"omitempty,min=1"`
	Ingredients  []IngredientMeasure `json:"ingredients" validate:"required,min=1,unique=IngredientID,dive"`
}

// RecipeCommandService owns the recipe write path. Every write runs in one transaction.
type RecipeCommandService struct {
	db       *gorm.DB
	assets   assets.Store
	validate *validator.Validate
}

// NewRecipeCommandService creates a new RecipeCommandService. A nil store disables
// image uploads.
func NewRecipeCommandService(db *gorm.DB, store assets.Store) *RecipeCommandService {
	if store == nil {
		store = assets.NoopStore{}
	}
	return &RecipeCommandService{
		db:       db,
		assets:   store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CreateRecipe stores a recipe with its ingredient measures and, when imagePath is set,
// uploads the image and records its URL as the thumbnail. Nothing persists unless every
// step succeeds. The local file at imagePath is removed on return.
func (s *RecipeCommandService) CreateRecipe(ctx context.Context, ownerID uint, in CreateRecipeInput, imagePath string) (*models.Recipe, error) {
	if imagePath != "" {
		defer func() {
			if err := s.assets.DeleteLocalTemp(imagePath); err != nil {
				logging.Ctx(ctx).Warn().Err(err).Str("path", imagePath).Msg("failed to remove temp upload")
			}
		}()
	}

	if err := s.validate.StructCtx(ctx, in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, describeValidation(err))
	}

	var recipeID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe := models.Recipe{
			Title:        strings.TrimSpace(in.Title),
			Description:  in.Description,
			Instructions: in.Instructions,
			Thumb:        in.Thumb,
			Time:         in.Time,
			OwnerID:      ownerID,
			CategoryID:   in.CategoryID,
			AreaID:       in.AreaID,
		}
		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return err
		}

		rows := make([]models.RecipeIngredient, len(in.Ingredients))
		for i, line := range in.Ingredients {
			rows[i] = models.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: line.IngredientID,
				Measure:      strings.TrimSpace(line.Measure),
			}
		}
		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return err
		}

		if imagePath != "" {
			url, err := s.assets.Upload(ctx, imagePath)
			if errors.Is(err, assets.ErrNotConfigured) {
				return fmt.Errorf("%w: image uploads are not enabled", ErrValidation)
			}
			if err != nil {
				return fmt.Errorf("%w: upload thumb: %w", ErrStorage, err)
			}
			if err := tx.Model(&recipe).Update("thumb", url).Error; err != nil {
				return err
			}
		}

		recipeID = recipe.ID
		return nil
	})
	if err != nil {
		return nil, classifyWrite("create recipe", err)
	}

	logging.Ctx(ctx).Info().Uint("recipe_id", recipeID).Uint("owner_id", ownerID).Msg("recipe created")
	return getRecipe(withRecipeAssociations(s.db.WithContext(ctx)), recipeID)
}

// DeleteRecipe removes a recipe owned by requesterID together with its ingredient
// measures; favorites go with it through the store's cascade. A recipe that exists but
// belongs to someone else is reported as not found.
func (s *RecipeCommandService) DeleteRecipe(ctx context.Context, recipeID, requesterID uint) (*models.Recipe, error) {
	var deleted models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := withRecipeAssociations(tx).
			Where("recipes.id = ? AND recipes.owner_id = ?", recipeID, requesterID).
			First(&deleted).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: recipe %d not found or not owner", ErrNotFound, recipeID)
		}
		if err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", deleted.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Recipe{}, deleted.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: recipe %d", ErrNotFound, recipeID)
		}
		return nil
	})
	if err != nil {
		return nil, classifyWrite("delete recipe", err)
	}

	logging.Ctx(ctx).Info().Uint("recipe_id", recipeID).Uint("owner_id", requesterID).Msg("recipe deleted")
	return &deleted, nil
}

// classifyWrite maps a failed write onto the error taxonomy. Errors that already carry a
// taxonomy sentinel pass through unchanged.
func classifyWrite(op string, err error) error {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict), errors.Is(err, ErrForbidden), errors.Is(err, ErrStorage):
		return err
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s: referenced record does not exist", ErrNotFound, op)
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s: duplicate record", ErrConflict, op)
	case database.IsCheckViolation(err):
		return fmt.Errorf("%w: %s: %v", ErrValidation, op, err)
	default:
		return storageErr(op, err)
	}
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
