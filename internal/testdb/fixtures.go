package testdb

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pageza/foodies/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var seq atomic.Int64

// Fixtures creates rows for tests. Every helper fails the test on error.
type Fixtures struct {
	t  *testing.T
	db *gorm.DB
}

// Fixtures returns a fixture builder bound to the test database
func (td *TestDB) Fixtures(t *testing.T) *Fixtures {
	return &Fixtures{t: t, db: td.DB}
}

// User creates a user with a unique email.
func (f *Fixtures) User(name string) *models.User {
	f.t.Helper()
	n := seq.Add(1)
	u := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("user%d@example.com", n),
		PasswordHash: "x",
		Avatar:       fmt.Sprintf("https://cdn.example.com/avatars/%d.png", n),
	}
	require.NoError(f.t, f.db.Create(u).Error)
	return u
}

func (f *Fixtures) Category(name string) *models.Category {
	f.t.Helper()
	c := &models.Category{Name: name}
	require.NoError(f.t, f.db.Create(c).Error)
	return c
}

func (f *Fixtures) Area(name string) *models.Area {
	f.t.Helper()
	a := &models.Area{Name: name}
	require.NoError(f.t, f.db.Create(a).Error)
	return a
}

func (f *Fixtures) Ingredient(name string) *models.Ingredient {
	f.t.Helper()
	i := &models.Ingredient{Name: name, Img: "https://cdn.example.com/ingredients/" + name + ".png"}
	require.NoError(f.t, f.db.Create(i).Error)
	return i
}

// RecipeSpec describes a recipe fixture. Ingredients maps ingredient ids to measures.
type RecipeSpec struct {
	Title       string
	Owner       *models.User
	Category    *models.Category
	Area        *models.Area
	Ingredients map[uint]string
}

// Recipe creates a recipe and its ingredient rows.
func (f *Fixtures) Recipe(spec RecipeSpec) *models.Recipe {
	f.t.Helper()
	r := &models.Recipe{
		Title:        spec.Title,
		Description:  spec.Title + " description",
		Instructions: "Cook it.",
		OwnerID:      spec.Owner.ID,
		CategoryID:   spec.Category.ID,
	}
	if spec.Area != nil {
		r.AreaID = &spec.Area.ID
	}
	require.NoError(f.t, f.db.Omit("Owner", "Category", "Area", "Ingredients").Create(r).Error)
	for ingredientID, measure := range spec.Ingredients {
		ri := &models.RecipeIngredient{RecipeID: r.ID, IngredientID: ingredientID, Measure: measure}
		require.NoError(f.t, f.db.Create(ri).Error)
	}
	return r
}

// Favorite marks recipe as a favorite of user.
func (f *Fixtures) Favorite(user *models.User, recipe *models.Recipe) *models.Favorite {
	f.t.Helper()
	fav := &models.Favorite{UserID: user.ID, RecipeID: recipe.ID}
	require.NoError(f.t, f.db.Create(fav).Error)
	return fav
}

// Testimonial creates a testimonial by owner, or an anonymous one when owner is nil.
func (f *Fixtures) Testimonial(owner *models.User, text string, createdAt time.Time) *models.Testimonial {
	f.t.Helper()
	t := &models.Testimonial{Testimonial: text, CreatedAt: createdAt}
	if owner != nil {
		t.OwnerID = &owner.ID
	}
	require.NoError(f.t, f.db.Omit("Owner").Create(t).Error)
	return t
}
