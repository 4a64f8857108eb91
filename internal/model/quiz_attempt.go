package model

import (
	"time"

	"gorm.io/datatypes"
)

// QuizAttempt 只追加，不修改也不删除
type QuizAttempt struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint           `gorm:"not null;index:idx_attempt_quiz_user" json:"user_id"`
	QuizID    uint           `gorm:"not null;index:idx_attempt_quiz_user" json:"quiz_id"`
	Answers   datatypes.JSON `json:"answers"`
	Score     int            `gorm:"not null" json:"score"`
	CreatedAt time.Time      `json:"created_at"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
