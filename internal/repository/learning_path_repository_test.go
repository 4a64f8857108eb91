package repository

import (
	"context"
	"errors"
	"testing"

	"learning_path_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLearningPathRepositoryOwnership(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewLearningPathRepository(db)

	owner := testutil.SeedUser(t, ctx, db, "owner@example.com")
	stranger := testutil.SeedUser(t, ctx, db, "stranger@example.com")
	p1 := testutil.SeedLearningPath(t, ctx, db, owner.ID, "m1")
	p2 := testutil.SeedLearningPath(t, ctx, db, owner.ID, "m1", "m2")

	got, err := repo.FindByIDForUser(ctx, p1.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Fundamentals", got.Title)
	assert.Len(t, got.Content.Data().Modules, 1)

	_, err = repo.FindByIDForUser(ctx, p1.ID, stranger.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	paths, err := repo.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, p2.ID, paths[0].ID)

	n, err := repo.DeleteForUser(ctx, p1.ID, stranger.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.DeleteForUser(ctx, p1.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.FindByIDForUser(ctx, p1.ID, owner.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
