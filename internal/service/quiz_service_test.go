package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/testutil"
	"learning_path_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newQuizService(db *gorm.DB, completer Completer) *QuizService {
	return NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewQuizAttemptRepository(db),
		repository.NewLearningPathRepository(db),
		NewAIService(completer),
		0,
	)
}

func countQuizzes(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.Quiz{}).Count(&n).Error)
	return n
}

func TestGenerateQuizReturnsExisting(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	ai := newFakeCompleter(quizReply)
	svc := newQuizService(db, ai)

	u := testutil.SeedUser(t, ctx, db, "quizgen@example.com")
	p := testutil.SeedLearningPath(t, ctx, db, u.ID, "module-1")
	req := GenerateQuizRequest{LearningPathID: p.ID, ModuleID: "module-1", ModuleTopic: "goroutines"}

	first, created, err := svc.GenerateQuiz(ctx, u.ID, req)
	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, first.Questions, 2)
	assert.Equal(t, "1", first.Questions[0].ID.Key())
	assert.Contains(t, ai.LastPrompt(), "Difficulty: intermediate")
	assert.Contains(t, ai.LastPrompt(), "Generate 5 multiple-choice questions about goroutines")

	second, created, err := svc.GenerateQuiz(ctx, u.ID, req)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, ai.Calls())
	assert.Equal(t, int64(1), countQuizzes(t, db))
}

func TestGenerateQuizConcurrentRequestsKeepOneQuiz(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	ai := newFakeCompleter(quizReply)
	ai.arrived = make(chan struct{}, 2)
	ai.gate = make(chan struct{})
	svc := newQuizService(db, ai)

	u := testutil.SeedUser(t, ctx, db, "race@example.com")
	p := testutil.SeedLearningPath(t, ctx, db, u.ID, "module-1")
	req := GenerateQuizRequest{LearningPathID: p.ID, ModuleID: "module-1", ModuleTopic: "channels"}

	type outcome struct {
		quiz    *model.Quiz
		created bool
		err     error
	}
	results := make([]outcome, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			q, c, err := svc.GenerateQuiz(ctx, u.ID, req)
			results[i] = outcome{q, c, err}
		}(i)
	}

	// 两个请求都越过快速路径后再放行 AI
	<-ai.arrived
	<-ai.arrived
	close(ai.gate)
	wg.Wait()

	require.NoError(t, results[0].err)
	require.NoError(t, results[1].err)
	assert.Equal(t, results[0].quiz.ID, results[1].quiz.ID)
	assert.NotEqual(t, results[0].created, results[1].created)
	assert.Equal(t, 2, ai.Calls())
	assert.Equal(t, int64(1), countQuizzes(t, db))
}

func TestGenerateQuizErrors(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	ai := newFakeCompleter()
	ai.err = errors.New("connection refused")
	svc := newQuizService(db, ai)

	owner := testutil.SeedUser(t, ctx, db, "qowner@example.com")
	other := testutil.SeedUser(t, ctx, db, "qother@example.com")
	p := testutil.SeedLearningPath(t, ctx, db, owner.ID, "module-1")

	_, _, err := svc.GenerateQuiz(ctx, owner.ID, GenerateQuizRequest{LearningPathID: p.ID, ModuleID: "module-1"})
	assert.ErrorIs(t, err, util.ErrValidation)

	_, _, err = svc.GenerateQuiz(ctx, other.ID, GenerateQuizRequest{LearningPathID: p.ID, ModuleID: "module-1", ModuleTopic: "x"})
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, _, err = svc.GenerateQuiz(ctx, owner.ID, GenerateQuizRequest{LearningPathID: p.ID, ModuleID: "module-1", ModuleTopic: "x"})
	assert.ErrorIs(t, err, util.ErrUpstream)
	assert.Equal(t, int64(0), countQuizzes(t, db))
}

func TestGradeAttemptPersistsAttempt(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := newQuizService(db, newFakeCompleter())

	u := testutil.SeedUser(t, ctx, db, "grade@example.com")
	p := testutil.SeedLearningPath(t, ctx, db, u.ID, "module-1")
	quiz := testutil.SeedQuiz(t, ctx, db, p.ID, "module-1",
		testutil.Question(`1`, `"B"`),
		testutil.Question(`2`, `"A"`),
	)

	res, err := svc.GradeAttempt(ctx, u.ID, quiz.ID, answers("1", `"B"`, "2", `"C"`))
	require.NoError(t, err)
	assert.Equal(t, 50, res.Score)
	require.Len(t, res.Results, 2)
	assert.True(t, res.Results[0].Correct)
	assert.False(t, res.Results[1].Correct)
	require.NotNil(t, res.Attempt)
	assert.NotZero(t, res.Attempt.ID)
	assert.Equal(t, 50, res.Attempt.Score)
	assert.JSONEq(t, `{"1":"B","2":"C"}`, string(res.Attempt.Answers))

	_, err = svc.GradeAttempt(ctx, u.ID, quiz.ID+100, answers())
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestGradeAttemptConcurrentSubmissionsAppend(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := newQuizService(db, newFakeCompleter())

	u := testutil.SeedUser(t, ctx, db, "concurrent@example.com")
	p := testutil.SeedLearningPath(t, ctx, db, u.ID, "module-1")
	quiz := testutil.SeedQuiz(t, ctx, db, p.ID, "module-1", testutil.Question(`1`, `"B"`))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, given := range []string{`"B"`, `"C"`} {
		wg.Add(1)
		go func(i int, given string) {
			defer wg.Done()
			_, errs[i] = svc.GradeAttempt(ctx, u.ID, quiz.ID, answers("1", given))
		}(i, given)
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	attempts, err := svc.ListAttempts(ctx, u.ID, quiz.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.NotEqual(t, attempts[0].ID, attempts[1].ID)
	assert.ElementsMatch(t, []int{0, 100}, []int{attempts[0].Score, attempts[1].Score})
}

func TestGetQuizNotFound(t *testing.T) {
	db := testutil.DB(t)
	svc := newQuizService(db, newFakeCompleter())

	_, err := svc.GetQuiz(context.Background(), 42)
	assert.ErrorIs(t, err, util.ErrNotFound)
}
