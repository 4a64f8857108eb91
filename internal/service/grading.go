package service

import (
	"bytes"
	"encoding/json"
	"learning_path_backend/internal/model"
)

// QuestionResult 单题批改结果，explanation 总是返回
type QuestionResult struct {
	QuestionID    model.QuestionID `json:"questionId"`
	Correct       bool             `json:"correct"`
	UserAnswer    json.RawMessage  `json:"userAnswer"`
	CorrectAnswer json.RawMessage  `json:"correctAnswer"`
	Explanation   string           `json:"explanation"`
}

// GradeQuestions 按题目存储顺序逐题比较，answers 以 QuestionID.Key() 为键。
// 分数为正确率百分比，四舍五入（.5 向上）；没有题目时为 0
func GradeQuestions(questions []model.QuizQuestion, answers map[string]json.RawMessage) (int, []QuestionResult) {
	results := make([]QuestionResult, 0, len(questions))
	matches := 0

	for _, q := range questions {
		userAnswer, ok := answers[q.ID.Key()]
		correct := ok && answersEqual(userAnswer, q.CorrectAnswer)
		if correct {
			matches++
		}

		results = append(results, QuestionResult{
			QuestionID:    q.ID,
			Correct:       correct,
			UserAnswer:    nullIfEmpty(userAnswer),
			CorrectAnswer: nullIfEmpty(q.CorrectAnswer),
			Explanation:   q.Explanation,
		})
	}

	return scorePercent(matches, len(questions)), results
}

func scorePercent(matches, total int) int {
	if total == 0 {
		return 0
	}
	return (200*matches + total) / (2 * total)
}

// answersEqual 严格相等：双方都必须是同类型的 JSON 标量。
// null、数组和对象永远不匹配，"1" 与 1 不相等
func answersEqual(a, b json.RawMessage) bool {
	av, ok := scalar(a)
	if !ok {
		return false
	}
	bv, ok := scalar(b)
	if !ok {
		return false
	}
	return av == bv
}

func scalar(raw json.RawMessage) (any, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, false
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	switch t := v.(type) {
	case string, float64, bool:
		return t, true
	default:
		return nil, false
	}
}

var jsonNull = json.RawMessage("null")

func nullIfEmpty(raw json.RawMessage) json.RawMessage {
	if len(bytes.TrimSpace(raw)) == 0 {
		return jsonNull
	}
	return raw
}
