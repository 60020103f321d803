package service

import (
	"context"
	"testing"

	"github.com/pageza/foodies/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCategories(t *testing.T) {
	w := newWorld(t)
	require.NoError(t, w.db.DB.Model(&models.Category{}).Where("id = ?", w.beef.ID).Update("img", "").Error)
	require.NoError(t, w.db.DB.Model(&models.Category{}).Where("id = ?", w.chicken.ID).Update("img", "https://cdn.example.com/chicken.jpg").Error)

	svc := NewCatalogService(w.db.DB)
	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 3)

	assert.Equal(t, "Beef", categories[0].Name)
	assert.Equal(t, models.DefaultCategoryImage, categories[0].Img)
	assert.Equal(t, "https://cdn.example.com/chicken.jpg", categories[1].Img)
	assert.Equal(t, "Dessert", categories[2].Name)
	assert.Equal(t, models.DefaultCategoryImage, categories[2].Img)
}

func TestListIngredientsPrefixSearch(t *testing.T) {
	w := newWorld(t)
	svc := NewCatalogService(w.db.DB)
	ctx := context.Background()

	got, err := svc.ListIngredients(ctx, "b", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Total)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Brown sugar", got.Items[0].Name)
	assert.Equal(t, "Butter", got.Items[1].Name)

	// prefix, not substring
	got, err = svc.ListIngredients(ctx, "sugar", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Total)

	got, err = svc.ListIngredients(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Total)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Flour", got.Items[0].Name)
	assert.Equal(t, "Sugar", got.Items[1].Name)
}

func TestListAreas(t *testing.T) {
	w := newWorld(t)
	svc := NewCatalogService(w.db.DB)

	got, err := svc.ListAreas(context.Background(), "it", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Total)
	assert.Equal(t, "Italian", got.Items[0].Name)

	none, err := svc.ListAreas(context.Background(), "%", 10, 0)
	require.NoError(t, err)
	assert.Zero(t, none.Total)
	assert.NotNil(t, none.Items)
}
