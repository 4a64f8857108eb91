package model

import (
	"gorm.io/datatypes"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// LearningPath AI 生成的学习路径，创建后不再修改，只属于创建者
// swagger:model LearningPath
type LearningPath struct {
	BaseModel
	UserID            uint                                    `gorm:"index;not null" json:"user_id"`
	Title             string                                  `gorm:"size:255;not null" json:"title"`
	Description       string                                  `gorm:"type:text" json:"description"`
	Difficulty        string                                  `gorm:"size:50" json:"difficulty"`
	EstimatedDuration float64                                 `json:"estimated_duration"` // 小时
	Content           datatypes.JSONType[LearningPathContent] `json:"content"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

// LearningPathContent 保存 AI 返回的完整结构
type LearningPathContent struct {
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Difficulty        string       `json:"difficulty"`
	EstimatedDuration float64      `json:"estimatedDuration"`
	Modules           []PathModule `json:"modules"`
}

type PathModule struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Topics      []string       `json:"topics"`
	Objectives  []string       `json:"objectives"`
	Resources   []PathResource `json:"resources"`
	Duration    float64        `json:"duration"`
}

type PathResource struct {
	Title string `json:"title"`
	Type  string `json:"type"`
	URL   string `json:"url,omitempty"`
}

// HasModule 判断内容中是否包含指定模块
func (c LearningPathContent) HasModule(moduleID string) bool {
	for _, m := range c.Modules {
		if m.ID == moduleID {
			return true
		}
	}
	return false
}
