package main

import (
	"context"
	"testing"

	"github.com/pageza/foodies/backend/internal/middleware"
	"github.com/pageza/foodies/backend/internal/models"
	"github.com/pageza/foodies/backend/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedIsIdempotent(t *testing.T) {
	td := testdb.NewSQLite(t)
	tokens := middleware.NewJWTValidator("seed-secret").WithSessionCheck(td.DB)
	ctx := context.Background()

	require.NoError(t, seed(ctx, td.DB, tokens))
	require.NoError(t, seed(ctx, td.DB, tokens))

	count := func(model any) int64 {
		var n int64
		require.NoError(t, td.DB.Model(model).Count(&n).Error)
		return n
	}
	assert.Equal(t, int64(len(demoUsers)), count(&models.User{}))
	assert.Equal(t, int64(len(categories)), count(&models.Category{}))
	assert.Equal(t, int64(len(recipes)), count(&models.Recipe{}))
	assert.Equal(t, int64(len(testimonials)), count(&models.Testimonial{}))

	var favorites int
	for _, r := range recipes {
		favorites += len(r.favoritedBy)
	}
	assert.Equal(t, int64(favorites), count(&models.Favorite{}))

	var user models.User
	require.NoError(t, td.DB.Where("email = ?", demoUsers[0].email).First(&user).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(demoPassword)))
	require.NotNil(t, user.Token)

	id, err := tokens.ValidateToken(ctx, *user.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}
