package models

import (
	"time"
)

type Recipe struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Title        string    `gorm:"size:255;not null;index" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Thumb        string    `gorm:"size:1000" json:"thumb"`
	Time         *int      `json:"time"`
	Instructions string    `gorm:"type:text" json:"instructions"`
	OwnerID      uint      `gorm:"not null;index" json:"ownerId"`
	AreaID       *uint     `gorm:"index" json:"areaId"`
	CategoryID   uint      `gorm:"not null;index" json:"categoryId"`

	Owner       *User              `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Category    *Category          `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Area        *Area              `gorm:"foreignKey:AreaID;constraint:OnDelete:SET NULL" json:"area,omitempty"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Favorites   []Favorite         `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`

	// Per-request annotations, never persisted.
	IsFavorite     *bool  `gorm:"-" json:"isFavorite,omitempty"`
	FavoritesCount *int64 `gorm:"-" json:"favoritesCount,omitempty"`
}

// RecipeIngredient joins a recipe to an ingredient and carries the free-text measure
// ("200g") for that ingredient in that recipe.
type RecipeIngredient struct {
	ID           uint   `gorm:"primarykey" json:"-"`
	RecipeID     uint   `gorm:"not null;uniqueIndex:uniq_recipe_ingredient" json:"-"`
	IngredientID uint   `gorm:"not null;uniqueIndex:uniq_recipe_ingredient;index" json:"ingredientId"`
	Measure      string `json:"measure"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

type Favorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UserID    uint      `gorm:"not null;uniqueIndex:uniq_favorite_user_recipe" json:"userId"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:uniq_favorite_user_recipe;index" json:"recipeId"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Favorite) TableName() string {
	return "favorites"
}
