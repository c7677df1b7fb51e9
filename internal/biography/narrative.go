package biography

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xaenox/biograph/internal/ai"
	"github.com/xaenox/biograph/internal/models"
)

// Rough completion pricing used for the cost estimate in the run summary.
const (
	tokensPerWord    = 1.33
	pricePer1KTokens = 0.002
)

var styleDirectives = map[models.NarrativeStyle]string{
	models.StyleChronological: "Write in a clear chronological voice, moving steadily through time.",
	models.StyleThematic:      "Organize the prose around the recurring themes of the period.",
	models.StyleReflective:    "Write in a warm, reflective first-person-adjacent voice.",
	models.StyleDocumentary:   "Write in a factual, documentary tone.",
	models.StyleHighlights:    "Focus on the most significant moments, keeping the prose brisk.",
}

type NarrativeService struct {
	generator ai.Generator
	model     string
	logger    *zap.Logger
}

func NewNarrativeService(generator ai.Generator, model string, logger *zap.Logger) *NarrativeService {
	return &NarrativeService{
		generator: generator,
		model:     model,
		logger:    logger,
	}
}

// GenerateBiography renders each chapter as prose and assembles the final
// document. Oracle failures degrade per chapter to the chapter summary; the
// document is always produced.
func (s *NarrativeService) GenerateBiography(ctx context.Context, chapters []*models.BiographyChapter, timeline *models.Timeline, style models.NarrativeStyle) (*models.Biography, error) {
	if timeline == nil {
		return nil, fmt.Errorf("generate biography: nil timeline")
	}

	narratives := make([]models.ChapterNarrative, 0, len(chapters))
	totalWords := 0
	for _, chapter := range chapters {
		prose := s.renderChapter(ctx, chapter, style)
		wordCount := len(strings.Fields(prose))
		totalWords += wordCount

		narratives = append(narratives, models.ChapterNarrative{
			ChapterID: chapter.ID,
			Title:     chapter.Title,
			Narrative: prose,
			WordCount: wordCount,
		})
	}

	introduction := s.introduction(timeline, len(chapters))
	conclusion := s.conclusion(timeline)
	totalWords += len(strings.Fields(introduction)) + len(strings.Fields(conclusion))

	bio := &models.Biography{
		ID:           "bio_" + uuid.New().String(),
		UserID:       timeline.UserID,
		Title:        fmt.Sprintf("A Life in %d Chapters", len(chapters)),
		Style:        style,
		Chapters:     narratives,
		Introduction: introduction,
		Conclusion:   conclusion,
		Metadata: models.BiographyMetadata{
			TotalWords:    totalWords,
			TotalChapters: len(chapters),
			GeneratedAt:   time.Now(),
			Cost:          EstimateCost(totalWords),
		},
	}

	s.logger.Info("Assembled biography",
		zap.String("biography_id", bio.ID),
		zap.Int("chapters", len(chapters)),
		zap.Int("words", totalWords))
	return bio, nil
}

func (s *NarrativeService) renderChapter(ctx context.Context, chapter *models.BiographyChapter, style models.NarrativeStyle) string {
	directive, ok := styleDirectives[style]
	if !ok {
		directive = styleDirectives[models.StyleChronological]
	}

	prompt := fmt.Sprintf(`Write a short biography chapter (2-4 paragraphs) based on this outline.

Title: %s
Period: %s to %s
Dominant theme: %s
Summary: %s

%s Return only the prose, no headings.`,
		chapter.Title,
		chapter.StartDate.Format("Jan 2, 2006"),
		chapter.EndDate.Format("Jan 2, 2006"),
		chapter.DominantCategory,
		chapter.Summary,
		directive)

	prose, err := s.generator.GenerateText(ctx, prompt, ai.GenerateOptions{
		Model:        s.model,
		Temperature:  0.7,
		MaxTokens:    700,
		SystemPrompt: "You are an expert biographer writing engaging life-story prose.",
	})
	if err != nil || strings.TrimSpace(prose) == "" {
		s.logger.Warn("Falling back to chapter summary for narrative",
			zap.Error(err),
			zap.String("chapter_id", chapter.ID))
		return chapter.Summary
	}
	return strings.TrimSpace(prose)
}

func (s *NarrativeService) introduction(timeline *models.Timeline, chapterCount int) string {
	if len(timeline.Events) == 0 {
		return "This biography is waiting for its first recorded moment."
	}
	return fmt.Sprintf("This biography spans %s to %s, drawn from %d recorded moments across %d chapters.",
		timeline.StartDate.Format("January 2006"),
		timeline.EndDate.Format("January 2006"),
		len(timeline.Events),
		chapterCount)
}

func (s *NarrativeService) conclusion(timeline *models.Timeline) string {
	if len(timeline.Events) == 0 {
		return ""
	}
	return fmt.Sprintf("The record ends in %s, with the story still being written.",
		timeline.EndDate.Format("January 2006"))
}

// EstimateCost converts generated volume into an approximate completion
// spend for the run summary.
func EstimateCost(totalWords int) float64 {
	tokens := float64(totalWords) * tokensPerWord
	return tokens / 1000 * pricePer1KTokens
}
