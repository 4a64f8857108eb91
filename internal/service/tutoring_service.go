package service

import (
	"context"
	"learning_path_backend/internal/util"
	"time"
)

type TutoringService struct {
	AI  *AIService
	now func() time.Time
}

func NewTutoringService(ai *AIService) *TutoringService {
	return &TutoringService{AI: ai, now: time.Now}
}

type TutorRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type TutorAnswer struct {
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *TutoringService) Ask(ctx context.Context, req TutorRequest) (*TutorAnswer, error) {
	if req.Question == "" {
		return nil, util.NewValidationError("Question is required")
	}

	answer, err := s.AI.Tutor(ctx, req.Question, req.Context)
	if err != nil {
		return nil, err
	}
	return &TutorAnswer{Answer: answer, Timestamp: s.now().UTC()}, nil
}
