package enricher

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/xaenox/biograph/internal/ai"
	"github.com/xaenox/biograph/internal/models"
)

type categoryResponse struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// GPTEnricher asks the text model to categorize each uncategorized event,
// falling back to keyword classification when the model fails or answers
// with something outside the category set.
type GPTEnricher struct {
	generator ai.Generator
	model     string
	logger    *zap.Logger
}

func NewGPTEnricher(generator ai.Generator, model string, logger *zap.Logger) *GPTEnricher {
	return &GPTEnricher{
		generator: generator,
		model:     model,
		logger:    logger,
	}
}

func (e *GPTEnricher) EnrichTimeline(ctx context.Context, timeline *models.Timeline) (*models.Timeline, error) {
	for _, event := range timeline.Events {
		if event.Category != "" {
			continue
		}
		event.Category = e.classify(ctx, event)
	}
	return timeline, nil
}

func (e *GPTEnricher) classify(ctx context.Context, event *models.TimelineEvent) models.Category {
	prompt := fmt.Sprintf(`Classify this life event into exactly one category: education, career, family, travel, achievements, significant_events, or other.

Event: "%s"

Return JSON: {"category": "career", "confidence": 0.9}`, event.Content)

	response, err := e.generator.GenerateText(ctx, prompt, ai.GenerateOptions{
		Model:       e.model,
		Temperature: 0.2,
		MaxTokens:   60,
	})
	if err != nil {
		e.logger.Warn("Category classification failed, using keyword fallback",
			zap.Error(err),
			zap.String("event_id", event.ID))
		return ClassifyContent(event.Content)
	}

	var parsed categoryResponse
	if err := json.Unmarshal([]byte(ai.StripCodeFence(response)), &parsed); err != nil {
		e.logger.Warn("Failed to parse category response",
			zap.Error(err),
			zap.String("response", response))
		return ClassifyContent(event.Content)
	}

	category := models.Category(parsed.Category)
	for _, known := range []models.Category{
		models.CategoryEducation,
		models.CategoryCareer,
		models.CategoryFamily,
		models.CategoryTravel,
		models.CategoryAchievements,
		models.CategorySignificantEvents,
		models.CategoryOther,
	} {
		if category == known {
			return category
		}
	}
	return ClassifyContent(event.Content)
}
