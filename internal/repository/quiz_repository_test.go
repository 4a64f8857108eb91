package repository

import (
	"context"
	"testing"

	"learning_path_backend/internal/model"
	"learning_path_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestQuizRepositoryCreateIfAbsent(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewQuizRepository(db)

	u := testutil.SeedUser(t, ctx, db, "quizrepo@example.com")
	p := testutil.SeedLearningPath(t, ctx, db, u.ID, "mod1")

	first := &model.Quiz{
		LearningPathID: p.ID,
		ModuleID:       "mod1",
		Questions:      datatypes.JSONSlice[model.QuizQuestion]{testutil.Question(`1`, `"B"`)},
	}
	got, created, err := repo.CreateIfAbsent(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, got.ID)

	dup := &model.Quiz{
		LearningPathID: p.ID,
		ModuleID:       "mod1",
		Questions:      datatypes.JSONSlice[model.QuizQuestion]{testutil.Question(`1`, `"C"`), testutil.Question(`2`, `"A"`)},
	}
	got, created, err = repo.CreateIfAbsent(ctx, dup)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, got.ID)
	require.Len(t, got.Questions, 1)
	assert.JSONEq(t, `"B"`, string(got.Questions[0].CorrectAnswer))

	var count int64
	require.NoError(t, db.Model(&model.Quiz{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestQuizRepositoryFind(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewQuizRepository(db)

	u := testutil.SeedUser(t, ctx, db, "quizfind@example.com")
	p := testutil.SeedLearningPath(t, ctx, db, u.ID, "mod1")
	q := testutil.SeedQuiz(t, ctx, db, p.ID, "mod1", testutil.Question(`"q1"`, `2`))

	byID, err := repo.FindByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "q1", byID.Questions[0].ID.Key())

	byKey, err := repo.FindByPathAndModule(ctx, p.ID, "mod1")
	require.NoError(t, err)
	assert.Equal(t, q.ID, byKey.ID)

	_, err = repo.FindByID(ctx, q.ID+100)
	assert.Error(t, err)
}
