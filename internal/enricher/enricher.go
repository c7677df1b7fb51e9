package enricher

import (
	"context"
	"strings"

	"github.com/xaenox/biograph/internal/models"
)

// Enricher assigns a life category to every uncategorized timeline event.
type Enricher interface {
	EnrichTimeline(ctx context.Context, timeline *models.Timeline) (*models.Timeline, error)
}

// categoryKeywords drives the deterministic classification path.
var categoryKeywords = map[models.Category][]string{
	models.CategoryEducation:         {"study", "school", "university", "degree", "course", "graduate", "exam", "homework"},
	models.CategoryCareer:            {"job", "work", "promotion", "interview", "project", "meeting", "hired", "office", "deadline"},
	models.CategoryFamily:            {"family", "wedding", "baby", "mother", "father", "sister", "brother", "anniversary"},
	models.CategoryTravel:            {"trip", "flight", "hotel", "vacation", "airport", "visited", "booking"},
	models.CategoryAchievements:      {"award", "won", "achievement", "milestone", "certified", "marathon", "published"},
	models.CategorySignificantEvents: {"moved", "diagnosed", "funeral", "divorce", "retired", "born", "engaged"},
}

// keywordOrder fixes the match order so classification is deterministic.
var keywordOrder = []models.Category{
	models.CategoryEducation,
	models.CategoryCareer,
	models.CategoryFamily,
	models.CategoryTravel,
	models.CategoryAchievements,
	models.CategorySignificantEvents,
}

type KeywordEnricher struct{}

func NewKeywordEnricher() *KeywordEnricher {
	return &KeywordEnricher{}
}

func (e *KeywordEnricher) EnrichTimeline(_ context.Context, timeline *models.Timeline) (*models.Timeline, error) {
	for _, event := range timeline.Events {
		if event.Category == "" {
			event.Category = ClassifyContent(event.Content)
		}
	}
	return timeline, nil
}

// ClassifyContent maps content to a category by keyword match, defaulting
// to "other".
func ClassifyContent(content string) models.Category {
	content = strings.ToLower(content)
	for _, category := range keywordOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(content, keyword) {
				return category
			}
		}
	}
	return models.CategoryOther
}
