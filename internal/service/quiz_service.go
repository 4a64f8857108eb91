package service

import (
	"context"
	"encoding/json"
	"errors"
	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/util"
	"learning_path_backend/pkg/logger"
	"learning_path_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultQuizQuestionCount = 5

type QuizService struct {
	QuizRepo      *repository.QuizRepository
	AttemptRepo   *repository.QuizAttemptRepository
	PathRepo      *repository.LearningPathRepository
	AI            *AIService
	QuestionCount int
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	attemptRepo *repository.QuizAttemptRepository,
	pathRepo *repository.LearningPathRepository,
	ai *AIService,
	questionCount int,
) *QuizService {
	if questionCount <= 0 {
		questionCount = defaultQuizQuestionCount
	}
	return &QuizService{
		QuizRepo:      quizRepo,
		AttemptRepo:   attemptRepo,
		PathRepo:      pathRepo,
		AI:            ai,
		QuestionCount: questionCount,
	}
}

type GenerateQuizRequest struct {
	LearningPathID uint   `json:"learningPathId"`
	ModuleID       string `json:"moduleId"`
	ModuleTopic    string `json:"moduleTopic"`
	Difficulty     string `json:"difficulty"`
}

// GenerateQuiz 每个 (path, module) 只保留一份测验。
// 已存在直接返回；否则调用 AI 后插入，插入冲突时返回胜出的那一份
func (s *QuizService) GenerateQuiz(ctx context.Context, userID uint, req GenerateQuizRequest) (*model.Quiz, bool, error) {
	if req.LearningPathID == 0 || req.ModuleID == "" || req.ModuleTopic == "" {
		return nil, false, util.NewValidationError("Missing required fields")
	}
	if req.Difficulty == "" {
		req.Difficulty = model.DifficultyIntermediate
	}

	if _, err := s.PathRepo.FindByIDForUser(ctx, req.LearningPathID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, util.NewNotFoundError("Learning path not found")
		}
		return nil, false, util.NewStoreError("Failed to fetch learning path", err)
	}

	existing, err := s.QuizRepo.FindByPathAndModule(ctx, req.LearningPathID, req.ModuleID)
	if err == nil {
		monitoring.ObserveQuizGeneration("cached")
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, util.NewStoreError("Failed to fetch quiz", err)
	}

	questions, err := s.AI.GenerateQuiz(ctx, req.ModuleTopic, req.Difficulty, s.QuestionCount)
	if err != nil {
		return nil, false, err
	}

	quiz, created, err := s.QuizRepo.CreateIfAbsent(ctx, &model.Quiz{
		LearningPathID: req.LearningPathID,
		ModuleID:       req.ModuleID,
		Questions:      datatypes.JSONSlice[model.QuizQuestion](questions),
	})
	if err != nil {
		return nil, false, util.NewStoreError("Failed to save quiz", err)
	}

	if created {
		monitoring.ObserveQuizGeneration("created")
	} else {
		// 并发请求先一步写入，本次 AI 结果丢弃
		monitoring.ObserveQuizGeneration("raced")
		logger.Log.Info("quiz generation lost insert race",
			zap.Uint("learning_path_id", req.LearningPathID),
			zap.String("module_id", req.ModuleID),
		)
	}
	return quiz, created, nil
}

func (s *QuizService) GetQuiz(ctx context.Context, quizID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(ctx, quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewNotFoundError("Quiz not found")
	}
	if err != nil {
		return nil, util.NewStoreError("Failed to fetch quiz", err)
	}
	return quiz, nil
}

type GradeResult struct {
	Score   int                `json:"score"`
	Results []QuestionResult   `json:"results"`
	Attempt *model.QuizAttempt `json:"attempt"`
}

// GradeAttempt 批改并追加一条 attempt 记录
func (s *QuizService) GradeAttempt(ctx context.Context, userID, quizID uint, answers map[string]json.RawMessage) (*GradeResult, error) {
	quiz, err := s.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	score, results := GradeQuestions(quiz.Questions, answers)

	payload, err := json.Marshal(answersOrEmpty(answers))
	if err != nil {
		return nil, util.NewValidationError("Invalid answers")
	}

	attempt := &model.QuizAttempt{
		UserID:  userID,
		QuizID:  quiz.ID,
		Answers: datatypes.JSON(payload),
		Score:   score,
	}
	if err := s.AttemptRepo.Create(ctx, attempt); err != nil {
		return nil, util.NewStoreError("Failed to submit quiz", err)
	}

	monitoring.ObserveQuizAttempt(score)
	return &GradeResult{Score: score, Results: results, Attempt: attempt}, nil
}

func (s *QuizService) ListAttempts(ctx context.Context, userID, quizID uint) ([]model.QuizAttempt, error) {
	attempts, err := s.AttemptRepo.ListByQuizAndUser(ctx, quizID, userID)
	if err != nil {
		return nil, util.NewStoreError("Failed to fetch attempts", err)
	}
	return attempts, nil
}

func answersOrEmpty(answers map[string]json.RawMessage) map[string]json.RawMessage {
	if answers == nil {
		return map[string]json.RawMessage{}
	}
	return answers
}
