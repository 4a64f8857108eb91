package repository

import (
	"context"
	"learning_path_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) FindByID(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.WithContext(ctx).First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindByPathAndModule(ctx context.Context, learningPathID uint, moduleID string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.WithContext(ctx).
		Where("learning_path_id = ? AND module_id = ?", learningPathID, moduleID).
		First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// CreateIfAbsent 依赖唯一索引插入；已存在时不写入，返回库中的那一份和 created=false
func (r *QuizRepository) CreateIfAbsent(ctx context.Context, quiz *model.Quiz) (*model.Quiz, bool, error) {
	result := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "learning_path_id"},
				{Name: "module_id"},
			},
			DoNothing: true,
		}).
		Create(quiz)
	if result.Error != nil {
		return nil, false, result.Error
	}

	if result.RowsAffected == 1 {
		return quiz, true, nil
	}

	existing, err := r.FindByPathAndModule(ctx, quiz.LearningPathID, quiz.ModuleID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}
