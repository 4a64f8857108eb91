package model

import "time"

// UserProgress 按 (user, learning path, module) 唯一，每次提交覆盖上一次
type UserProgress struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint       `gorm:"not null;uniqueIndex:idx_progress_user_path_module" json:"user_id"`
	LearningPathID uint       `gorm:"not null;uniqueIndex:idx_progress_user_path_module" json:"learning_path_id"`
	ModuleID       string     `gorm:"size:100;not null;uniqueIndex:idx_progress_user_path_module" json:"module_id"`
	Completed      bool       `gorm:"not null" json:"completed"`
	Score          *float64   `json:"score"`
	TimeSpent      float64    `gorm:"not null" json:"time_spent"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
