package service

import (
	"encoding/json"
	"testing"

	"learning_path_backend/internal/model"
	"learning_path_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answers(pairs ...string) map[string]json.RawMessage {
	m := make(map[string]json.RawMessage, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		m[pairs[i]] = json.RawMessage(pairs[i+1])
	}
	return m
}

func TestGradeQuestionsHalfCorrect(t *testing.T) {
	questions := []model.QuizQuestion{
		testutil.Question(`1`, `"B"`),
		testutil.Question(`2`, `"A"`),
	}

	score, results := GradeQuestions(questions, answers("1", `"B"`, "2", `"C"`))

	assert.Equal(t, 50, score)
	require.Len(t, results, 2)
	assert.Equal(t, "1", results[0].QuestionID.Key())
	assert.True(t, results[0].Correct)
	assert.Equal(t, "2", results[1].QuestionID.Key())
	assert.False(t, results[1].Correct)
	assert.JSONEq(t, `"C"`, string(results[1].UserAnswer))
	assert.JSONEq(t, `"A"`, string(results[1].CorrectAnswer))
	assert.Equal(t, "because 2", results[1].Explanation)
}

func TestGradeQuestionsNoQuestions(t *testing.T) {
	score, results := GradeQuestions(nil, answers("1", `"A"`))
	assert.Equal(t, 0, score)
	assert.Empty(t, results)
}

func TestGradeQuestionsRounding(t *testing.T) {
	cases := []struct {
		total, correct, want int
	}{
		{3, 1, 33},
		{3, 2, 67},
		{8, 1, 13},
		{8, 3, 38},
		{4, 4, 100},
		{4, 0, 0},
	}

	for _, tc := range cases {
		var questions []model.QuizQuestion
		given := map[string]json.RawMessage{}
		for i := 0; i < tc.total; i++ {
			id := string(rune('a' + i))
			questions = append(questions, testutil.Question(`"`+id+`"`, `"yes"`))
			if i < tc.correct {
				given[id] = json.RawMessage(`"yes"`)
			} else {
				given[id] = json.RawMessage(`"no"`)
			}
		}

		score, _ := GradeQuestions(questions, given)
		assert.Equal(t, tc.want, score, "%d/%d", tc.correct, tc.total)
	}
}

func TestGradeQuestionsStrictEquality(t *testing.T) {
	cases := []struct {
		name    string
		correct string
		answer  string
		want    bool
	}{
		{"same string", `"B"`, `"B"`, true},
		{"case differs", `"B"`, `"b"`, false},
		{"number vs string", `1`, `"1"`, false},
		{"same number different spelling", `1`, `1.0`, true},
		{"bool vs string", `true`, `"true"`, false},
		{"same bool", `false`, `false`, true},
		{"null never matches", `null`, `null`, false},
		{"arrays never match", `["A"]`, `["A"]`, false},
		{"objects never match", `{"a":1}`, `{"a":1}`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			questions := []model.QuizQuestion{testutil.Question(`1`, tc.correct)}
			score, results := GradeQuestions(questions, answers("1", tc.answer))
			assert.Equal(t, tc.want, results[0].Correct)
			if tc.want {
				assert.Equal(t, 100, score)
			} else {
				assert.Equal(t, 0, score)
			}
		})
	}
}

func TestGradeQuestionsMissingAndExtraAnswers(t *testing.T) {
	questions := []model.QuizQuestion{
		testutil.Question(`"q1"`, `"A"`),
		testutil.Question(`"q2"`, `"B"`),
	}

	score, results := GradeQuestions(questions, answers("q1", `"A"`, "q9", `"B"`))

	assert.Equal(t, 50, score)
	require.Len(t, results, 2)
	assert.Equal(t, "q1", results[0].QuestionID.Key())
	assert.Equal(t, "q2", results[1].QuestionID.Key())
	assert.False(t, results[1].Correct)
	assert.Equal(t, "null", string(results[1].UserAnswer))

	out, err := json.Marshal(results[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"questionId":"q2","correct":false,"userAnswer":null,"correctAnswer":"B","explanation":"because \"q2\""}`, string(out))
}
