package ai

import (
	"context"
	"strings"
)

// GenerateOptions are per-call parameters for the text model.
type GenerateOptions struct {
	Model        string
	Temperature  float64
	MaxTokens    int
	SystemPrompt string
}

// Generator is the narrow surface the biography services need from a text
// model. Implementations may fail or time out; callers own the fallback.
type Generator interface {
	GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// StripCodeFence removes ```json fences models wrap around structured output.
func StripCodeFence(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
