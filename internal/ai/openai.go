package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type OpenAIGenerator struct {
	client       *openai.Client
	defaultModel string
	logger       *zap.Logger
}

func NewOpenAIGenerator(apiKey string, defaultModel string, logger *zap.Logger) *OpenAIGenerator {
	return &OpenAIGenerator{
		client:       openai.NewClient(apiKey),
		defaultModel: defaultModel,
		logger:       logger,
	}
}

func (g *OpenAIGenerator) GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	model := opts.Model
	if model == "" {
		model = g.defaultModel
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if opts.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: opts.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       model,
			Messages:    messages,
			MaxTokens:   opts.MaxTokens,
			Temperature: float32(opts.Temperature),
		},
	)
	if err != nil {
		g.logger.Error("Failed to get completion", zap.Error(err), zap.String("model", model))
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
