package service

import (
	"context"
	"errors"
	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultLearningStyle = "visual"

type LearningPathService struct {
	Repo     *repository.LearningPathRepository
	Progress *ProgressService
	AI       *AIService
}

func NewLearningPathService(repo *repository.LearningPathRepository, progress *ProgressService, ai *AIService) *LearningPathService {
	return &LearningPathService{
		Repo:     repo,
		Progress: progress,
		AI:       ai,
	}
}

type GeneratePathRequest struct {
	Goal          string `json:"goal"`
	SkillLevel    string `json:"skillLevel"`
	LearningStyle string `json:"learningStyle"`
}

type PathDetail struct {
	LearningPath *model.LearningPath `json:"learningPath"`
	Progress     []model.UserProgress `json:"progress"`
}

func (s *LearningPathService) Generate(ctx context.Context, userID uint, req GeneratePathRequest) (*model.LearningPath, error) {
	if req.Goal == "" || req.SkillLevel == "" {
		return nil, util.NewValidationError("Goal and skill level are required")
	}
	if req.LearningStyle == "" {
		req.LearningStyle = defaultLearningStyle
	}

	content, err := s.AI.GenerateLearningPath(ctx, req.Goal, req.SkillLevel, req.LearningStyle)
	if err != nil {
		return nil, err
	}

	path := &model.LearningPath{
		UserID:            userID,
		Title:             content.Title,
		Description:       content.Description,
		Difficulty:        content.Difficulty,
		EstimatedDuration: content.EstimatedDuration,
		Content:           datatypes.NewJSONType(*content),
	}
	if path.Difficulty == "" {
		path.Difficulty = model.DifficultyIntermediate
	}

	if err := s.Repo.Create(ctx, path); err != nil {
		return nil, util.NewStoreError("Failed to generate learning path", err)
	}
	return path, nil
}

func (s *LearningPathService) List(ctx context.Context, userID uint) ([]model.LearningPath, error) {
	paths, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, util.NewStoreError("Failed to fetch learning paths", err)
	}
	if paths == nil {
		paths = []model.LearningPath{}
	}
	return paths, nil
}

func (s *LearningPathService) Get(ctx context.Context, userID, id uint) (*PathDetail, error) {
	path, err := s.Repo.FindByIDForUser(ctx, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewNotFoundError("Learning path not found")
	}
	if err != nil {
		return nil, util.NewStoreError("Failed to fetch learning path", err)
	}

	progress, err := s.Progress.ListProgress(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		progress = []model.UserProgress{}
	}
	return &PathDetail{LearningPath: path, Progress: progress}, nil
}

// Delete 软删除，进度和测验记录保留
func (s *LearningPathService) Delete(ctx context.Context, userID, id uint) error {
	affected, err := s.Repo.DeleteForUser(ctx, id, userID)
	if err != nil {
		return util.NewStoreError("Failed to delete learning path", err)
	}
	if affected == 0 {
		return util.NewNotFoundError("Learning path not found")
	}
	return nil
}
