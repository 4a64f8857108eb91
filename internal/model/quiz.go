package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"gorm.io/datatypes"
)

// Quiz 每个 (learning path, module) 最多一份，由唯一索引保证
type Quiz struct {
	ID             uint                             `gorm:"primaryKey;autoIncrement" json:"id"`
	LearningPathID uint                             `gorm:"not null;uniqueIndex:idx_quiz_path_module" json:"learning_path_id"`
	ModuleID       string                           `gorm:"size:100;not null;uniqueIndex:idx_quiz_path_module" json:"module_id"`
	Questions      datatypes.JSONSlice[QuizQuestion] `json:"questions"`
	CreatedAt      time.Time                        `json:"created_at"`
	UpdatedAt      time.Time                        `json:"updated_at"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuizQuestion struct {
	ID            QuestionID      `json:"id"`
	Question      string          `json:"question"`
	Options       []string        `json:"options"`
	CorrectAnswer json.RawMessage `json:"correctAnswer"`
	Explanation   string          `json:"explanation"`
}

// QuestionID 原样保存 AI 返回的 id（数字或字符串）
type QuestionID json.RawMessage

func (id QuestionID) MarshalJSON() ([]byte, error) {
	if len(id) == 0 {
		return []byte("null"), nil
	}
	return []byte(id), nil
}

func (id *QuestionID) UnmarshalJSON(data []byte) error {
	*id = append((*id)[:0], bytes.TrimSpace(data)...)
	return nil
}

// Key 返回答案映射中对应的键：字符串取其内容，数字取规范化的十进制形式
func (id QuestionID) Key() string {
	raw := bytes.TrimSpace(id)
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
		return string(raw)
	}
	if f, err := strconv.ParseFloat(string(raw), 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return string(raw)
}
