package service

import (
	"context"
	"errors"
	"fmt"
	"learning_path_backend/internal/config"

	openai "github.com/sashabaranov/go-openai"
)

// Completer 唯一的 AI 能力：给定 prompt，返回补全文本
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const defaultAIModel = "gpt-4.1-mini"

// OpenAICompleter 基于 OpenAI Chat Completions，也支持兼容的 BaseURL
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

// NewOpenAICompleter 在启动时校验一次密钥
func NewOpenAICompleter(cfg config.AIConfig) (*OpenAICompleter, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is missing")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultAIModel
	}

	return &OpenAICompleter{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("openai api error (status %d): %w", apiErr.HTTPStatusCode, err)
		}
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("AI returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAICompleter) Model() string {
	return c.model
}
