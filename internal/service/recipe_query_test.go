package service

import (
	"context"
	"testing"
	"time"

	"github.com/pageza/foodies/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogDessertPaging(t *testing.T, w *world) {
	require.Equal(t, uint(3), w.dessert.ID)

	for i := 0; i < 5; i++ {
		w.recipe("Cake", w.dessert, w.french, w.sugar, w.flour)
	}
	w.recipe("Steak", w.beef, w.french, w.butter)
	w.recipe("Roast", w.chicken, nil, w.butter)

	svc := NewRecipeQueryService(w.db.DB)
	for _, category := range []string{"3", "Dessert", "dess"} {
		t.Run(category, func(t *testing.T) {
			page, err := svc.ListCatalog(context.Background(), RecipeFilter{Category: category}, NewPagination(1, 2, DefaultCatalogLimit), nil)
			require.NoError(t, err)

			assert.Equal(t, int64(5), page.Total)
			assert.Equal(t, 3, page.TotalPages)
			assert.Equal(t, 1, page.Page)
			require.Len(t, page.Items, 2)
			for _, r := range page.Items {
				require.NotNil(t, r.Category)
				assert.Equal(t, "Dessert", r.Category.Name)
			}
		})
	}
}

func TestListCatalogShapeAndOrder(t *testing.T) {
	w := newWorld(t)
	first := w.recipe("Pie", w.dessert, w.french, w.sugar, w.flour)
	second := w.recipe("Stew", w.beef, nil, w.butter)

	svc := NewRecipeQueryService(w.db.DB)
	page, err := svc.ListCatalog(context.Background(), RecipeFilter{}, NewPagination(1, 10, DefaultCatalogLimit), nil)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	// newest first
	assert.Equal(t, second.ID, page.Items[0].ID)
	assert.Equal(t, first.ID, page.Items[1].ID)

	pie := page.Items[1]
	require.NotNil(t, pie.Owner)
	assert.Equal(t, w.owner.ID, pie.Owner.ID)
	assert.Equal(t, "Owner", pie.Owner.Name)
	assert.NotEmpty(t, pie.Owner.Avatar)
	assert.Empty(t, pie.Owner.Email, "owner email must not be loaded")
	require.NotNil(t, pie.Area)
	assert.Equal(t, "French", pie.Area.Name)
	require.Len(t, pie.Ingredients, 2)
	for _, ri := range pie.Ingredients {
		require.NotNil(t, ri.Ingredient)
		assert.Equal(t, "100g", ri.Measure)
	}
	assert.Nil(t, pie.IsFavorite, "anonymous viewers get no favorite flag")

	assert.Nil(t, page.Items[0].Area)
}

func catalogIngredientFilterDoesNotFanOut(t *testing.T, w *world) {
	// matches "sugar" through two ingredient rows
	w.recipe("Caramel", w.dessert, nil, w.sugar, w.brownSugar)
	w.recipe("Shortbread", w.dessert, nil, w.sugar, w.butter, w.flour)
	w.recipe("Steak", w.beef, nil, w.butter)
	w.recipe("Roast", w.chicken, w.italian)

	svc := NewRecipeQueryService(w.db.DB)
	ctx := context.Background()
	p := NewPagination(1, MaxLimit, DefaultCatalogLimit)

	sugary, err := svc.ListCatalog(ctx, RecipeFilter{Ingredient: "sugar"}, p, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sugary.Total)
	require.Len(t, sugary.Items, 2)
	assert.NotEqual(t, sugary.Items[0].ID, sugary.Items[1].ID)

	byID, err := svc.ListCatalog(ctx, RecipeFilter{Ingredient: "1"}, p, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), byID.Total)

	all, err := svc.ListCatalog(ctx, RecipeFilter{}, p, nil)
	require.NoError(t, err)

	// categories partition the catalog: the per-category totals add up to the whole
	seen := map[uint]bool{}
	var sum int64
	for _, c := range []*models.Category{w.beef, w.chicken, w.dessert} {
		page, err := svc.ListCatalog(ctx, RecipeFilter{Category: c.Name, Match: MatchEquals}, p, nil)
		require.NoError(t, err)
		sum += page.Total
		for _, r := range page.Items {
			assert.False(t, seen[r.ID], "recipe %d listed twice", r.ID)
			seen[r.ID] = true
		}
	}
	assert.Equal(t, all.Total, sum)
	assert.Len(t, seen, len(all.Items))
}

func catalogEscapesLikeWildcards(t *testing.T, w *world) {
	w.recipe("Cake", w.dessert, nil)

	svc := NewRecipeQueryService(w.db.DB)
	page, err := svc.ListCatalog(context.Background(), RecipeFilter{Category: "%"}, NewPagination(1, 10, DefaultCatalogLimit), nil)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Zero(t, page.TotalPages)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestListCatalogViewerFlags(t *testing.T) {
	w := newWorld(t)
	liked := w.recipe("Pie", w.dessert, nil)
	other := w.recipe("Tart", w.dessert, nil)
	w.fx.Favorite(w.viewer, liked)

	svc := NewRecipeQueryService(w.db.DB)
	page, err := svc.ListCatalog(context.Background(), RecipeFilter{}, NewPagination(1, 10, DefaultCatalogLimit), &w.viewer.ID)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	flags := map[uint]bool{}
	for _, r := range page.Items {
		require.NotNil(t, r.IsFavorite)
		flags[r.ID] = *r.IsFavorite
	}
	assert.True(t, flags[liked.ID])
	assert.False(t, flags[other.ID])
}

func TestListCatalogPageBeyondEnd(t *testing.T) {
	w := newWorld(t)
	w.recipe("Pie", w.dessert, nil)
	w.recipe("Tart", w.dessert, nil)

	svc := NewRecipeQueryService(w.db.DB)
	page, err := svc.ListCatalog(context.Background(), RecipeFilter{}, NewPagination(5, 2, DefaultCatalogLimit), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Empty(t, page.Items)
}

func TestListCatalogClampsLimit(t *testing.T) {
	w := newWorld(t)
	for i := 0; i < MaxLimit+3; i++ {
		w.recipe("Cake", w.dessert, nil)
	}

	svc := NewRecipeQueryService(w.db.DB)
	page, err := svc.ListCatalog(context.Background(), RecipeFilter{}, NewPagination(1, 1000, DefaultCatalogLimit), nil)
	require.NoError(t, err)
	assert.Len(t, page.Items, MaxLimit)
	assert.Equal(t, MaxLimit, page.Limit)
	assert.Equal(t, 2, page.TotalPages)
}

func TestListOwnedBy(t *testing.T) {
	w := newWorld(t)
	w.recipe("Pie", w.dessert, nil)
	w.recipe("Tart", w.dessert, nil)
	w.fx.Recipe(testdbSpec(w, "Viewer's soup", w.viewer))

	svc := NewRecipeQueryService(w.db.DB)
	page, err := svc.ListOwnedBy(context.Background(), w.owner.ID, NewPagination(1, 10, DefaultOwnedLimit))
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	for _, r := range page.Items {
		assert.Equal(t, w.owner.ID, r.OwnerID)
	}

	empty, err := svc.ListOwnedBy(context.Background(), 999, NewPagination(1, 10, DefaultOwnedLimit))
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Zero(t, empty.TotalPages)
}

func favoritesOfNewestFirst(t *testing.T, w *world) {
	a := w.recipe("A", w.dessert, nil)
	b := w.recipe("B", w.dessert, nil)
	c := w.recipe("C", w.dessert, nil)
	w.recipe("D", w.dessert, nil)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, r := range []*models.Recipe{b, c, a} {
		fav := &models.Favorite{UserID: w.viewer.ID, RecipeID: r.ID, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, w.db.DB.Create(fav).Error)
	}

	svc := NewRecipeQueryService(w.db.DB)
	page, err := svc.ListFavoritesOf(context.Background(), w.viewer.ID, NewPagination(1, 10, DefaultOwnedLimit))
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Items, 3)
	assert.Equal(t, []uint{a.ID, c.ID, b.ID}, recipeIDs(page.Items))
	for _, r := range page.Items {
		require.NotNil(t, r.IsFavorite)
		assert.True(t, *r.IsFavorite)
		require.NotNil(t, r.Category)
	}
}

func popularOrdering(t *testing.T, w *world) {
	r1 := w.recipe("Three A", w.dessert, nil)
	r2 := w.recipe("None", w.dessert, nil)
	r3 := w.recipe("Five", w.dessert, nil)
	r4 := w.recipe("Three B", w.dessert, nil)

	users := make([]*models.User, 5)
	for i := range users {
		users[i] = w.fx.User("Fan")
	}
	favorite := func(r *models.Recipe, n int) {
		for _, u := range users[:n] {
			w.fx.Favorite(u, r)
		}
	}
	favorite(r1, 3)
	favorite(r3, 5)
	favorite(r4, 3)

	svc := NewRecipeQueryService(w.db.DB)
	page, err := svc.ListPopular(context.Background(), NewPagination(1, 10, DefaultPopularLimit), &users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	require.Len(t, page.Items, 4)

	assert.Equal(t, []uint{r3.ID, r1.ID, r4.ID, r2.ID}, recipeIDs(page.Items))
	counts := make([]int64, len(page.Items))
	for i, r := range page.Items {
		require.NotNil(t, r.FavoritesCount)
		counts[i] = *r.FavoritesCount
		require.NotNil(t, r.Owner)
	}
	assert.Equal(t, []int64{5, 3, 3, 0}, counts)

	require.NotNil(t, page.Items[0].IsFavorite)
	assert.True(t, *page.Items[0].IsFavorite)
	assert.False(t, *page.Items[3].IsFavorite)

	second, err := svc.ListPopular(context.Background(), NewPagination(2, 2, DefaultPopularLimit), nil)
	require.NoError(t, err)
	assert.Equal(t, []uint{r4.ID, r2.ID}, recipeIDs(second.Items))
	assert.Equal(t, 2, second.TotalPages)
}

func TestGetByID(t *testing.T) {
	w := newWorld(t)
	r := w.recipe("Pie", w.dessert, w.french, w.sugar)

	svc := NewRecipeQueryService(w.db.DB)
	got, err := svc.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pie", got.Title)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, "Sugar", got.Ingredients[0].Ingredient.Name)

	_, err = svc.GetByID(context.Background(), 4242)
	assert.ErrorIs(t, err, ErrNotFound)
}

func distinctFilters(t *testing.T, w *world) {
	shouty := w.fx.Area("FRENCH ")
	lower := w.fx.Ingredient("sugar")
	w.recipe("Pie", w.dessert, w.french, w.sugar, w.flour)
	w.recipe("Tart", w.dessert, shouty, lower, w.butter)
	w.recipe("Tiramisu", w.dessert, w.italian, w.sugar)
	w.recipe("Steak", w.beef, nil, w.brownSugar)

	svc := NewRecipeQueryService(w.db.DB)
	got, err := svc.ListDistinctFilters(context.Background(), RecipeFilter{Category: "Dessert", Match: MatchEquals})
	require.NoError(t, err)

	require.Len(t, got.Areas, 2)
	assert.Equal(t, "italian", lowerTrim(got.Areas[1]))
	assert.Equal(t, "french", lowerTrim(got.Areas[0]))
	assert.Len(t, got.Ingredients, 3)
	assert.Equal(t, "butter", lowerTrim(got.Ingredients[0]))
	assert.Equal(t, "flour", lowerTrim(got.Ingredients[1]))
	assert.Equal(t, "sugar", lowerTrim(got.Ingredients[2]))

	none, err := svc.ListDistinctFilters(context.Background(), RecipeFilter{Category: "Vegan", Match: MatchEquals})
	require.NoError(t, err)
	assert.Empty(t, none.Areas)
	assert.Empty(t, none.Ingredients)
}

func TestUniqueFold(t *testing.T) {
	assert.Equal(t, []string{"apple", "Banana", "cherry"}, uniqueFold([]string{"cherry", "Banana", "apple", "banana", " ", "APPLE"}))
	assert.Empty(t, uniqueFold(nil))
}
