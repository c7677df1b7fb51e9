package biography

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xaenox/biograph/internal/ai"
	"github.com/xaenox/biograph/internal/models"
)

const chapterPromptEvents = 20 // events quoted in the titling prompt

type chapterTitleResponse struct {
	Title      string  `json:"title"`
	Summary    string  `json:"summary"`
	Confidence float64 `json:"confidence"`
}

type ChapterService struct {
	generator ai.Generator
	model     string
	logger    *zap.Logger
}

func NewChapterService(generator ai.Generator, model string, logger *zap.Logger) *ChapterService {
	return &ChapterService{
		generator: generator,
		model:     model,
		logger:    logger,
	}
}

// GenerateChapters slices a sorted timeline at detected boundaries and builds
// one chapter per segment that meets the size threshold. Oracle failures
// during titling degrade to deterministic titles; a chapter is always
// produced for every surviving segment.
func (s *ChapterService) GenerateChapters(ctx context.Context, timeline *models.Timeline, opts models.ChapterOptions) []*models.BiographyChapter {
	defaults := models.DefaultChapterOptions()
	if opts.MinEventsPerChapter <= 0 {
		opts.MinEventsPerChapter = defaults.MinEventsPerChapter
	}
	if opts.MaxEventsPerChapter <= 0 {
		opts.MaxEventsPerChapter = defaults.MaxEventsPerChapter
	}
	if opts.MinChapterDurationDays <= 0 {
		opts.MinChapterDurationDays = defaults.MinChapterDurationDays
	}
	if opts.MaxChapterDurationDays <= 0 {
		opts.MaxChapterDurationDays = defaults.MaxChapterDurationDays
	}

	s.logger.Info("Generating chapters",
		zap.String("user_id", timeline.UserID),
		zap.Int("events", len(timeline.Events)))

	boundaries := DetectBoundaries(timeline.Events, opts.MinChapterDurationDays, opts.MaxChapterDurationDays)

	chapters := make([]*models.BiographyChapter, 0, len(boundaries)+1)
	start := 0
	for _, boundary := range boundaries {
		segment := timeline.Events[start:boundary.Index]
		if len(segment) >= opts.MinEventsPerChapter {
			chapters = append(chapters, s.createChapter(ctx, segment, opts.UseAI))
		}
		start = boundary.Index
	}

	final := timeline.Events[start:]
	if len(final) >= opts.MinEventsPerChapter {
		chapters = append(chapters, s.createChapter(ctx, final, opts.UseAI))
	}

	s.logger.Info("Generated chapters", zap.Int("count", len(chapters)))
	return chapters
}

func (s *ChapterService) createChapter(ctx context.Context, events []*models.TimelineEvent, useAI bool) *models.BiographyChapter {
	startDate := events[0].Timestamp
	endDate := events[len(events)-1].Timestamp
	durationDays := int(endDate.Sub(startDate).Hours() / 24)

	dominant := dominantCategory(events)

	var title, summary string
	confidence := 0.0

	if useAI && len(events) > 0 {
		title, summary, confidence = s.generateTitleAndSummary(ctx, events, dominant)
	} else {
		title = simpleTitle(dominant, startDate)
		summary = simpleSummary(events, startDate, endDate)
	}

	eventIDs := make([]string, len(events))
	for i, e := range events {
		eventIDs[i] = e.ID
	}

	return &models.BiographyChapter{
		ID:               "chapter_" + uuid.New().String(),
		Title:            title,
		StartDate:        startDate,
		EndDate:          endDate,
		EventIDs:         eventIDs,
		Summary:          summary,
		DominantCategory: dominant,
		Significance:     len(events), // simple metric for now
		Metadata: models.ChapterMetadata{
			EventCount:   len(events),
			DurationDays: durationDays,
			AIGenerated:  useAI,
			Confidence:   confidence,
		},
	}
}

// dominantCategory picks the highest-occurrence category, breaking ties by
// the order categories were first encountered. "other" when nothing is
// categorized.
func dominantCategory(events []*models.TimelineEvent) models.Category {
	counts := make(map[models.Category]int)
	var order []models.Category

	for _, e := range events {
		if e.Category == "" {
			continue
		}
		if _, seen := counts[e.Category]; !seen {
			order = append(order, e.Category)
		}
		counts[e.Category]++
	}

	dominant := models.CategoryOther
	best := 0
	for _, c := range order {
		if counts[c] > best {
			dominant = c
			best = counts[c]
		}
	}
	return dominant
}

func (s *ChapterService) generateTitleAndSummary(ctx context.Context, events []*models.TimelineEvent, dominant models.Category) (title, summary string, confidence float64) {
	prompt := buildChapterPrompt(events, dominant)

	response, err := s.generator.GenerateText(ctx, prompt, ai.GenerateOptions{
		Model:        s.model,
		Temperature:  0.3,
		MaxTokens:    300,
		SystemPrompt: "You are an expert biographer creating chapter titles and summaries for life stories.",
	})
	if err != nil {
		s.logger.Warn("Falling back to deterministic chapter title", zap.Error(err))
		return fallbackTitleAndSummary(events, dominant)
	}

	var parsed chapterTitleResponse
	if err := json.Unmarshal([]byte(ai.StripCodeFence(response)), &parsed); err != nil {
		s.logger.Warn("Failed to parse chapter title response",
			zap.Error(err),
			zap.String("response", response))
		return fallbackTitleAndSummary(events, dominant)
	}

	if parsed.Title == "" {
		parsed.Title = "Untitled Chapter"
	}
	if parsed.Confidence == 0 {
		parsed.Confidence = 0.5
	}
	return parsed.Title, parsed.Summary, parsed.Confidence
}

func fallbackTitleAndSummary(events []*models.TimelineEvent, dominant models.Category) (string, string, float64) {
	startDate := events[0].Timestamp
	endDate := events[len(events)-1].Timestamp
	return simpleTitle(dominant, startDate), simpleSummary(events, startDate, endDate), 0
}

func buildChapterPrompt(events []*models.TimelineEvent, dominant models.Category) string {
	sample := events
	if len(sample) > chapterPromptEvents {
		sample = sample[:chapterPromptEvents]
	}

	var listing strings.Builder
	for i, e := range sample {
		fmt.Fprintf(&listing, "%d. %s: %s\n", i+1, e.Timestamp.Format("Jan 2, 2006"), truncate(e.Content, 100))
	}

	return fmt.Sprintf(`Based on the following life events, generate a compelling chapter title and a brief summary (2-3 sentences).

Events:
%s
Dominant Category: %s
Total Events: %d
Time Period: %s to %s

Output Format (JSON):
{
  "title": "Engaging chapter title (max 8 words)",
  "summary": "Brief summary of this chapter (2-3 sentences)",
  "confidence": 0.9
}`,
		listing.String(),
		dominant,
		len(events),
		events[0].Timestamp.Format("Jan 2, 2006"),
		events[len(events)-1].Timestamp.Format("Jan 2, 2006"))
}

// simpleTitle is the deterministic titling path: a per-category template
// keyed by start year, defaulting to "Month Year".
func simpleTitle(category models.Category, startDate time.Time) string {
	year := startDate.Year()

	switch category {
	case models.CategoryEducation:
		return fmt.Sprintf("Education in %d", year)
	case models.CategoryCareer:
		return fmt.Sprintf("Career Journey - %d", year)
	case models.CategoryFamily:
		return fmt.Sprintf("Family Life in %d", year)
	case models.CategoryTravel:
		return fmt.Sprintf("Adventures in %d", year)
	case models.CategoryAchievements:
		return fmt.Sprintf("Achievements of %d", year)
	case models.CategorySignificantEvents:
		return fmt.Sprintf("Life Changes in %d", year)
	default:
		return fmt.Sprintf("%s %d", startDate.Month().String(), year)
	}
}

func simpleSummary(events []*models.TimelineEvent, startDate, endDate time.Time) string {
	return fmt.Sprintf("A chapter covering %d events from %s to %s.",
		len(events),
		startDate.Format("Jan 2, 2006"),
		endDate.Format("Jan 2, 2006"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
