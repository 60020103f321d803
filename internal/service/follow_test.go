package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func follow(t *testing.T, w *world) {
	svc := NewFollowService(w.db.DB)
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, w.viewer.ID, w.owner.ID))
	assert.ErrorIs(t, svc.Follow(ctx, w.viewer.ID, w.owner.ID), ErrConflict)
	assert.ErrorIs(t, svc.Follow(ctx, w.viewer.ID, w.viewer.ID), ErrValidation)
	assert.ErrorIs(t, svc.Follow(ctx, w.viewer.ID, 999), ErrNotFound)
	assert.ErrorIs(t, svc.Follow(ctx, 999, w.owner.ID), ErrNotFound)

	counts, err := svc.Counts(ctx, w.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Followers)
	assert.Equal(t, int64(0), counts.Following)

	counts, err = svc.Counts(ctx, w.viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.Followers)
	assert.Equal(t, int64(1), counts.Following)
}

func TestUnfollow(t *testing.T) {
	w := newWorld(t)
	svc := NewFollowService(w.db.DB)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Unfollow(ctx, w.viewer.ID, w.owner.ID), ErrNotFound)

	require.NoError(t, svc.Follow(ctx, w.viewer.ID, w.owner.ID))
	require.NoError(t, svc.Unfollow(ctx, w.viewer.ID, w.owner.ID))

	counts, err := svc.Counts(ctx, w.owner.ID)
	require.NoError(t, err)
	assert.Zero(t, counts.Followers)
}
