package service

import (
	"context"
	"encoding/json"
	"fmt"
	"learning_path_backend/internal/model"
	"learning_path_backend/internal/util"
	"learning_path_backend/pkg/monitoring"
	"learning_path_backend/pkg/tracing"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// AIService 负责拼装 prompt 并解析 AI 返回的 JSON，不做重试
type AIService struct {
	completer Completer
}

func NewAIService(completer Completer) *AIService {
	return &AIService{completer: completer}
}

var (
	learningPathSchema = mustCompileSchema("learning-path", map[string]any{
		"type":     "object",
		"required": []any{"title", "modules"},
		"properties": map[string]any{
			"title":             map[string]any{"type": "string", "minLength": 1},
			"description":       map[string]any{"type": "string"},
			"difficulty":        map[string]any{"type": "string"},
			"estimatedDuration": map[string]any{"type": "number", "minimum": 0},
			"modules": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":     "object",
					"required": []any{"id", "title"},
					"properties": map[string]any{
						"id":          map[string]any{"type": "string", "minLength": 1},
						"title":       map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"topics":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"objectives":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"resources": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"title": map[string]any{"type": "string"},
									"type":  map[string]any{"type": "string"},
									"url":   map[string]any{"type": "string"},
								},
							},
						},
						"duration": map[string]any{"type": "number", "minimum": 0},
					},
				},
			},
		},
	})

	quizSchema = mustCompileSchema("quiz", map[string]any{
		"type":     "object",
		"required": []any{"questions"},
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"id", "question", "correctAnswer"},
					"properties": map[string]any{
						"id":            map[string]any{"type": []any{"integer", "string"}},
						"question":      map[string]any{"type": "string"},
						"options":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"correctAnswer": map[string]any{"type": []any{"string", "number", "boolean"}},
						"explanation":   map[string]any{"type": "string"},
					},
				},
			},
		},
	})
)

func mustCompileSchema(name string, definition map[string]any) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, definition); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", name, err))
	}
	schema, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}
	return schema
}

func (s *AIService) GenerateLearningPath(ctx context.Context, goal, skillLevel, learningStyle string) (*model.LearningPathContent, error) {
	prompt := fmt.Sprintf(`You are an expert educational content creator. Generate a comprehensive, personalized learning path for the following:

Goal: %s
Current Skill Level: %s
Learning Style: %s

Respond with a JSON object of the form:
{
  "title": string,
  "description": string,
  "difficulty": "beginner" | "intermediate" | "advanced",
  "estimatedDuration": number (total hours),
  "modules": [
    {
      "id": string (unique, e.g. "module-1"),
      "title": string,
      "description": string,
      "topics": [string],
      "objectives": [string],
      "resources": [{"title": string, "type": string, "url": string}],
      "duration": number (hours)
    }
  ]
}

Return ONLY valid JSON.`, goal, skillLevel, learningStyle)

	text, err := s.complete(ctx, "generate_learning_path", prompt)
	if err != nil {
		return nil, err
	}

	var content model.LearningPathContent
	if err := decodeValidated(text, learningPathSchema, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

func (s *AIService) GenerateQuiz(ctx context.Context, moduleTopic, difficulty string, numQuestions int) ([]model.QuizQuestion, error) {
	prompt := fmt.Sprintf(`Generate %d multiple-choice questions about %s.
Difficulty: %s

Respond with a JSON object of the form:
{
  "questions": [
    {
      "id": number (1-based, unique),
      "question": string,
      "options": [string],
      "correctAnswer": string (exactly one of the options),
      "explanation": string
    }
  ]
}

Return ONLY valid JSON.`, numQuestions, moduleTopic, difficulty)

	text, err := s.complete(ctx, "generate_quiz", prompt)
	if err != nil {
		return nil, err
	}

	var content struct {
		Questions []model.QuizQuestion `json:"questions"`
	}
	if err := decodeValidated(text, quizSchema, &content); err != nil {
		return nil, err
	}
	return content.Questions, nil
}

func (s *AIService) Tutor(ctx context.Context, question, background string) (string, error) {
	prompt := fmt.Sprintf("Context: %s\nQuestion: %s", background, question)
	text, err := s.complete(ctx, "tutor", prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (s *AIService) complete(ctx context.Context, operation, prompt string) (string, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ai."+operation)
	defer span.End()
	span.SetAttributes(attribute.Int("ai.prompt_length", len(prompt)))

	start := time.Now()
	text, err := s.completer.Complete(ctx, prompt)
	monitoring.ObserveAIRequest(operation, err, time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", util.NewUpstreamError("AI request failed", err)
	}
	return text, nil
}

// decodeValidated 去掉 Markdown 代码块，按 schema 校验后解码到 out
func decodeValidated(text string, schema *jsonschema.Schema, out any) error {
	raw := extractJSON(text)

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return util.NewUpstreamError("AI returned malformed JSON", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return util.NewUpstreamError("AI response failed schema validation", err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return util.NewUpstreamError("AI returned malformed JSON", err)
	}
	return nil
}

func extractJSON(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
