package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/pageza/foodies/backend/internal/assets"
	"github.com/pageza/foodies/backend/internal/models"
	"github.com/pageza/foodies/backend/internal/testdb"
)

// world is a small seeded catalog shared by the service tests.
type world struct {
	db *testdb.TestDB
	fx *testdb.Fixtures

	owner, viewer *models.User

	beef, chicken, dessert *models.Category
	french, italian        *models.Area

	sugar, brownSugar, flour, butter *models.Ingredient
}

func newWorld(t *testing.T) *world {
	t.Helper()
	return newWorldOn(t, testdb.NewSQLite(t))
}

// newWorldOn seeds the shared catalog into an empty database.
func newWorldOn(t *testing.T, db *testdb.TestDB) *world {
	t.Helper()
	fx := db.Fixtures(t)
	return &world{
		db:         db,
		fx:         fx,
		owner:      fx.User("Owner"),
		viewer:     fx.User("Viewer"),
		beef:       fx.Category("Beef"),
		chicken:    fx.Category("Chicken"),
		dessert:    fx.Category("Dessert"),
		french:     fx.Area("French"),
		italian:    fx.Area("Italian"),
		sugar:      fx.Ingredient("Sugar"),
		brownSugar: fx.Ingredient("Brown sugar"),
		flour:      fx.Ingredient("Flour"),
		butter:     fx.Ingredient("Butter"),
	}
}

func (w *world) recipe(title string, cat *models.Category, area *models.Area, ingredients ...*models.Ingredient) *models.Recipe {
	measures := make(map[uint]string, len(ingredients))
	for _, ing := range ingredients {
		measures[ing.ID] = "100g"
	}
	return w.fx.Recipe(testdb.RecipeSpec{
		Title:       title,
		Owner:       w.owner,
		Category:    cat,
		Area:        area,
		Ingredients: measures,
	})
}

func (w *world) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := w.db.DB.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}

// fakeStore records asset store calls
type fakeStore struct {
	mu       sync.Mutex
	url      string
	err      error
	uploaded []string
	removed  []string
}

var _ assets.Store = (*fakeStore)(nil)

func (f *fakeStore) Upload(_ context.Context, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append(f.uploaded, path)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func (f *fakeStore) DeleteLocalTemp(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, path)
	return nil
}

func uintPtr(v uint) *uint { return &v }

func testdbSpec(w *world, title string, owner *models.User) testdb.RecipeSpec {
	return testdb.RecipeSpec{Title: title, Owner: owner, Category: w.dessert}
}

func recipeIDs(recipes []models.Recipe) []uint {
	ids := make([]uint, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}
	return ids
}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
