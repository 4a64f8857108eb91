package repository

import (
	"context"
	"learning_path_backend/internal/model"

	"gorm.io/gorm"
)

type LearningPathRepository struct {
	DB *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{DB: db}
}

func (r *LearningPathRepository) Create(ctx context.Context, path *model.LearningPath) error {
	return r.DB.WithContext(ctx).Create(path).Error
}

// FindByIDForUser 只返回属于该用户的学习路径，否则 gorm.ErrRecordNotFound
func (r *LearningPathRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*model.LearningPath, error) {
	var path model.LearningPath
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&path).Error
	if err != nil {
		return nil, err
	}
	return &path, nil
}

func (r *LearningPathRepository) ListByUser(ctx context.Context, userID uint) ([]model.LearningPath, error) {
	var paths []model.LearningPath
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&paths).Error
	return paths, err
}

// DeleteForUser 软删除，返回受影响行数
func (r *LearningPathRepository) DeleteForUser(ctx context.Context, id, userID uint) (int64, error) {
	result := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.LearningPath{})
	return result.RowsAffected, result.Error
}
