package repository

import (
	"context"
	"learning_path_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Upsert 以 (user_id, learning_path_id, module_id) 为键原子地插入或覆盖，返回写入后的记录
func (r *ProgressRepository) Upsert(ctx context.Context, progress *model.UserProgress) (*model.UserProgress, error) {
	db := r.DB.WithContext(ctx)

	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "learning_path_id"},
			{Name: "module_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"completed",
			"score",
			"time_spent",
			"completed_at",
			"updated_at",
		}),
	}).Create(progress).Error
	if err != nil {
		return nil, err
	}

	return r.FindByKey(ctx, progress.UserID, progress.LearningPathID, progress.ModuleID)
}

func (r *ProgressRepository) FindByKey(ctx context.Context, userID, learningPathID uint, moduleID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND learning_path_id = ? AND module_id = ?", userID, learningPathID, moduleID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) ListByUserAndPath(ctx context.Context, userID, learningPathID uint) ([]model.UserProgress, error) {
	var rows []model.UserProgress
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND learning_path_id = ?", userID, learningPathID).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}
