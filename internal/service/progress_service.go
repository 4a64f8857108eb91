package service

import (
	"context"
	"errors"
	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/util"
	"learning_path_backend/pkg/monitoring"
	"time"

	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	PathRepo     *repository.LearningPathRepository
	now          func() time.Time
}

func NewProgressService(progressRepo *repository.ProgressRepository, pathRepo *repository.LearningPathRepository) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		PathRepo:     pathRepo,
		now:          time.Now,
	}
}

// ProgressRequest Completed 为指针，用于区分未传与 false
type ProgressRequest struct {
	ModuleID  string   `json:"moduleId"`
	Completed *bool    `json:"completed"`
	Score     *float64 `json:"score"`
	TimeSpent *float64 `json:"timeSpent"`
}

// RecordProgress 对 (user, path, module) 做一次原子 upsert，后写覆盖先写
func (s *ProgressService) RecordProgress(ctx context.Context, userID, learningPathID uint, req ProgressRequest) (*model.UserProgress, error) {
	if req.ModuleID == "" {
		return nil, util.NewValidationError("moduleId is required")
	}
	if req.Completed == nil {
		return nil, util.NewValidationError("completed is required")
	}

	if err := s.ensurePathOwned(ctx, userID, learningPathID); err != nil {
		return nil, err
	}

	progress := &model.UserProgress{
		UserID:         userID,
		LearningPathID: learningPathID,
		ModuleID:       req.ModuleID,
		Completed:      *req.Completed,
		Score:          req.Score,
	}
	if req.TimeSpent != nil {
		progress.TimeSpent = *req.TimeSpent
	}
	if progress.Completed {
		now := s.now()
		progress.CompletedAt = &now
	}

	saved, err := s.ProgressRepo.Upsert(ctx, progress)
	if err != nil {
		return nil, util.NewStoreError("Failed to update progress", err)
	}

	monitoring.ObserveProgressUpdate(saved.Completed)
	return saved, nil
}

func (s *ProgressService) ListProgress(ctx context.Context, userID, learningPathID uint) ([]model.UserProgress, error) {
	rows, err := s.ProgressRepo.ListByUserAndPath(ctx, userID, learningPathID)
	if err != nil {
		return nil, util.NewStoreError("Failed to fetch progress", err)
	}
	return rows, nil
}

func (s *ProgressService) ensurePathOwned(ctx context.Context, userID, learningPathID uint) error {
	_, err := s.PathRepo.FindByIDForUser(ctx, learningPathID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.NewNotFoundError("Learning path not found")
	}
	if err != nil {
		return util.NewStoreError("Failed to fetch learning path", err)
	}
	return nil
}
