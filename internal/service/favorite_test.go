package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pageza/foodies/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func addFavoriteTwiceConflicts(t *testing.T, w *world) {
	r := w.recipe("Pie", w.dessert, nil)
	svc := NewFavoriteService(w.db.DB)
	ctx := context.Background()

	fav, err := svc.AddFavorite(ctx, w.viewer.ID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, w.viewer.ID, fav.UserID)
	assert.Equal(t, r.ID, fav.RecipeID)
	assert.NotZero(t, fav.ID)

	_, err = svc.AddFavorite(ctx, w.viewer.ID, r.ID)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, int64(1), w.count(t, &models.Favorite{}))
}

func concurrentAddFavorite(t *testing.T, w *world) {
	r := w.recipe("Pie", w.dessert, nil)
	svc := NewFavoriteService(w.db.DB)

	const callers = 20
	errs := make([]error, callers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = svc.AddFavorite(context.Background(), w.viewer.ID, r.ID)
		}(i)
	}
	close(start)
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrConflict)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, int64(1), w.count(t, &models.Favorite{}))
}

// addFavoriteLosesInsertRace inserts the pair after AddFavorite's existence check has
// passed, so only the unique constraint can reject the second insert.
func addFavoriteLosesInsertRace(t *testing.T, w *world) {
	r := w.recipe("Pie", w.dessert, nil)
	db := w.db.DB
	const name = "test:insert_competing_favorite"

	inserted := false
	require.NoError(t, db.Callback().Create().Before("gorm:begin_transaction").Register(name, func(tx *gorm.DB) {
		if inserted || tx.Statement.Table != "favorites" {
			return
		}
		inserted = true
		now := time.Now()
		err := tx.Session(&gorm.Session{NewDB: true}).
			Exec("INSERT INTO favorites (user_id, recipe_id, created_at, updated_at) VALUES (?, ?, ?, ?)", w.viewer.ID, r.ID, now, now).Error
		if err != nil {
			_ = tx.AddError(err)
		}
	}))
	t.Cleanup(func() { _ = db.Callback().Create().Remove(name) })

	_, err := NewFavoriteService(db).AddFavorite(context.Background(), w.viewer.ID, r.ID)
	assert.True(t, inserted)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, int64(1), w.count(t, &models.Favorite{}))
}

func TestAddFavoriteUnknownRecipe(t *testing.T) {
	w := newWorld(t)
	svc := NewFavoriteService(w.db.DB)

	_, err := svc.AddFavorite(context.Background(), w.viewer.ID, 404)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, w.count(t, &models.Favorite{}))
}

func addFavoriteUnknownUser(t *testing.T, w *world) {
	r := w.recipe("Pie", w.dessert, nil)
	svc := NewFavoriteService(w.db.DB)

	_, err := svc.AddFavorite(context.Background(), 4040, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveFavorite(t *testing.T) {
	w := newWorld(t)
	r := w.recipe("Pie", w.dessert, nil)
	other := w.recipe("Tart", w.dessert, nil)
	w.fx.Favorite(w.owner, other)
	svc := NewFavoriteService(w.db.DB)
	ctx := context.Background()

	_, err := svc.RemoveFavorite(ctx, w.viewer.ID, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(1), w.count(t, &models.Favorite{}))

	added, err := svc.AddFavorite(ctx, w.viewer.ID, r.ID)
	require.NoError(t, err)

	removed, err := svc.RemoveFavorite(ctx, w.viewer.ID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, added.ID, removed.ID)
	assert.Equal(t, int64(1), w.count(t, &models.Favorite{}))

	_, err = svc.RemoveFavorite(ctx, w.viewer.ID, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
