package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alimgiray/gitmentor/internal/metrics"
	"github.com/alimgiray/gitmentor/internal/models"
	"github.com/alimgiray/gitmentor/pkg/logger"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"
)

// InferenceClient sends a prompt to a language model and returns the raw completion text
type InferenceClient interface {
	Infer(ctx context.Context, prompt string) (string, error)
}

// InferenceConfig holds the fixed model settings
type InferenceConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
}

// OpenAIInferenceClient talks to any OpenAI-compatible chat completion API (Groq by default)
type OpenAIInferenceClient struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewOpenAIInferenceClient creates a client that never retries: a failed call is reported as-is
func NewOpenAIInferenceClient(cfg InferenceConfig) (*OpenAIInferenceClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("language model API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("language model name is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIInferenceClient{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

// Infer sends prompt as a single user message and returns the first choice
func (c *OpenAIInferenceClient) Infer(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
	})
	metrics.ObserveInference(time.Since(start))
	if err != nil {
		return "", &models.InferenceError{Err: fmt.Errorf("chat completion with %s: %w", c.model, err)}
	}

	if len(resp.Choices) == 0 {
		return "", models.ErrEmptyResponse
	}

	logger.WithFields(logrus.Fields{
		"model":             c.model,
		"duration_ms":       time.Since(start).Milliseconds(),
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
	}).Debug("chat completion finished")

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", models.ErrEmptyResponse
	}
	return content, nil
}
