package api

import (
	"time"

	"github.com/pageza/foodies/backend/internal/models"
	"github.com/pageza/foodies/backend/internal/service"
)

// OwnerView is the public part of a user
type OwnerView struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type NamedView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// IngredientLineView is one ingredient of a recipe together with its measure
type IngredientLineView struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Img     string `json:"img"`
	Measure string `json:"measure"`
}

// RecipeView is the response shape of a recipe
type RecipeView struct {
	ID             uint                 `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Thumb          string               `json:"thumb"`
	Time           *int                 `json:"time"`
	Instructions   string               `json:"instructions"`
	Category       *NamedView           `json:"category"`
	Area           *NamedView           `json:"area"`
	Ingredients    []IngredientLineView `json:"ingredients"`
	Owner          *OwnerView           `json:"owner"`
	CreatedAt      time.Time            `json:"createdAt"`
	IsFavorite     *bool                `json:"isFavorite,omitempty"`
	FavoritesCount *int64               `json:"favoritesCount,omitempty"`
}

// PageView is one page of a listing
type PageView[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func toRecipeView(r *models.Recipe) RecipeView {
	v := RecipeView{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		Thumb:          r.Thumb,
		Time:           r.Time,
		Instructions:   r.Instructions,
		CreatedAt:      r.CreatedAt,
		IsFavorite:     r.IsFavorite,
		FavoritesCount: r.FavoritesCount,
		Ingredients:    make([]IngredientLineView, 0, len(r.Ingredients)),
	}
	if r.Category != nil {
		v.Category = &NamedView{ID: r.Category.ID, Name: r.Category.Name}
	}
	if r.Area != nil {
		v.Area = &NamedView{ID: r.Area.ID, Name: r.Area.Name}
	}
	if r.Owner != nil {
		v.Owner = &OwnerView{ID: r.Owner.ID, Name: r.Owner.Name, Avatar: r.Owner.Avatar}
	}
	for _, line := range r.Ingredients {
		lv := IngredientLineView{ID: line.IngredientID, Measure: line.Measure}
		if line.Ingredient != nil {
			lv.Name = line.Ingredient.Name
			lv.Img = line.Ingredient.Img
		}
		v.Ingredients = append(v.Ingredients, lv)
	}
	return v
}

func toRecipePageView(p *service.RecipePage) PageView[RecipeView] {
	items := make([]RecipeView, len(p.Items))
	for i := range p.Items {
		items[i] = toRecipeView(&p.Items[i])
	}
	return PageView[RecipeView]{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

func toListingView[T any](l *service.Listing[T], p service.Pagination) PageView[T] {
	return PageView[T]{
		Items:      l.Items,
		Total:      l.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages(l.Total),
	}
}
