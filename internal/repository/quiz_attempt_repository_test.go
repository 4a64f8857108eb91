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

func TestQuizAttemptRepositoryAppendOnly(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewQuizAttemptRepository(db)

	u := testutil.SeedUser(t, ctx, db, "attemptrepo@example.com")
	other := testutil.SeedUser(t, ctx, db, "other@example.com")
	p := testutil.SeedLearningPath(t, ctx, db, u.ID, "mod1")
	q := testutil.SeedQuiz(t, ctx, db, p.ID, "mod1", testutil.Question(`1`, `"B"`))

	for _, score := range []int{0, 100} {
		require.NoError(t, repo.Create(ctx, &model.QuizAttempt{
			UserID:  u.ID,
			QuizID:  q.ID,
			Answers: datatypes.JSON(`{"1":"B"}`),
			Score:   score,
		}))
	}
	require.NoError(t, repo.Create(ctx, &model.QuizAttempt{UserID: other.ID, QuizID: q.ID, Answers: datatypes.JSON(`{}`)}))

	attempts, err := repo.ListByQuizAndUser(ctx, q.ID, u.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, 100, attempts[0].Score)
	assert.Equal(t, 0, attempts[1].Score)
	assert.NotEqual(t, attempts[0].ID, attempts[1].ID)
}
