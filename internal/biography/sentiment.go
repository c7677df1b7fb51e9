package biography

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xaenox/biograph/internal/ai"
	"github.com/xaenox/biograph/internal/models"
)

const (
	sentimentBatchSize = 10

	// Absolute valence above which an event counts as a peak or valley.
	milestoneThreshold = 0.7

	sentimentSystemPrompt = "You are an expert in emotional analysis and sentiment detection."
)

type sentimentResponse struct {
	Valence        float64 `json:"valence"`
	Arousal        float64 `json:"arousal"`
	Dominance      float64 `json:"dominance"`
	PrimaryEmotion string  `json:"primaryEmotion"`
	Confidence     float64 `json:"confidence"`
}

type SentimentService struct {
	generator ai.Generator
	model     string
	logger    *zap.Logger
}

func NewSentimentService(generator ai.Generator, model string, logger *zap.Logger) *SentimentService {
	return &SentimentService{
		generator: generator,
		model:     model,
		logger:    logger,
	}
}

// AnalyzeEvent scores a single event. Every numeric field is clamped into
// its declared range and unknown emotions become Neutral; any oracle failure
// yields DefaultScore, so an event always ends up scored.
func (s *SentimentService) AnalyzeEvent(ctx context.Context, event *models.TimelineEvent) models.SentimentScore {
	prompt := fmt.Sprintf(`Analyze the emotional sentiment of this life event:

"%s"

Provide scores for:
- Valence: -1.0 (very negative) to 1.0 (very positive)
- Arousal: 0.0 (very calm) to 1.0 (very excited)
- Dominance: 0.0 (powerless) to 1.0 (empowered)
- Primary emotion: Joy, Sadness, Anger, Fear, Surprise, Disgust, Contentment, Excitement, Anxiety, or Neutral

Output JSON format:
{
  "valence": 0.8,
  "arousal": 0.6,
  "dominance": 0.7,
  "primaryEmotion": "Joy",
  "confidence": 0.9
}`, event.Content)

	response, err := s.generator.GenerateText(ctx, prompt, ai.GenerateOptions{
		Model:        s.model,
		Temperature:  0.3,
		MaxTokens:    150,
		SystemPrompt: sentimentSystemPrompt,
	})
	if err != nil {
		s.logger.Warn("Sentiment analysis failed, using default score",
			zap.Error(err),
			zap.String("event_id", event.ID))
		return DefaultScore()
	}

	var parsed sentimentResponse
	if err := json.Unmarshal([]byte(ai.StripCodeFence(response)), &parsed); err != nil {
		s.logger.Warn("Failed to parse sentiment response",
			zap.Error(err),
			zap.String("event_id", event.ID),
			zap.String("response", response))
		return DefaultScore()
	}

	return sanitizeScore(parsed)
}

// AnalyzeBatch scores events in fixed batches of 10 to reduce round-trips.
// A failed batch degrades that batch alone; results from other batches are
// retained. The returned map always contains an entry for every input event.
func (s *SentimentService) AnalyzeBatch(ctx context.Context, events []*models.TimelineEvent) map[string]models.SentimentScore {
	results := make(map[string]models.SentimentScore, len(events))

	for start := 0; start < len(events); start += sentimentBatchSize {
		end := start + sentimentBatchSize
		if end > len(events) {
			end = len(events)
		}
		batch := events[start:end]

		parsed, err := s.analyzeBatchOnce(ctx, batch)
		if err != nil {
			s.logger.Warn("Batch sentiment analysis failed, using default scores",
				zap.Error(err),
				zap.Int("batch_start", start),
				zap.Int("batch_size", len(batch)))
			for _, event := range batch {
				results[event.ID] = DefaultScore()
			}
			continue
		}

		for i, event := range batch {
			if i < len(parsed) {
				results[event.ID] = sanitizeScore(parsed[i])
			} else {
				results[event.ID] = DefaultScore()
			}
		}
	}

	return results
}

func (s *SentimentService) analyzeBatchOnce(ctx context.Context, batch []*models.TimelineEvent) ([]sentimentResponse, error) {
	response, err := s.generator.GenerateText(ctx, buildBatchPrompt(batch), ai.GenerateOptions{
		Model:        s.model,
		Temperature:  0.3,
		MaxTokens:    800,
		SystemPrompt: sentimentSystemPrompt,
	})
	if err != nil {
		return nil, err
	}

	var parsed []sentimentResponse
	if err := json.Unmarshal([]byte(ai.StripCodeFence(response)), &parsed); err != nil {
		return nil, fmt.Errorf("parsing batch response: %w", err)
	}
	return parsed, nil
}

func buildBatchPrompt(batch []*models.TimelineEvent) string {
	var list strings.Builder
	for i, e := range batch {
		fmt.Fprintf(&list, "%d. \"%s\"\n", i+1, truncate(e.Content, 150))
	}

	return fmt.Sprintf(`Analyze the emotional sentiment of these life events. Return a JSON array with one object per event in the same order.

Events:
%s
For each event, provide:
- valence: -1.0 (very negative) to 1.0 (very positive)
- arousal: 0.0 (very calm) to 1.0 (very excited)
- dominance: 0.0 (powerless) to 1.0 (empowered)
- primaryEmotion: Joy, Sadness, Anger, Fear, Surprise, Disgust, Contentment, Excitement, Anxiety, or Neutral
- confidence: 0.0 to 1.0

Output format:
[
  {"valence": 0.8, "arousal": 0.6, "dominance": 0.7, "primaryEmotion": "Joy", "confidence": 0.9},
  ...
]`, list.String())
}

// GenerateMoodTimeline scores every event and aggregates the results into a
// periodic mood trajectory with detected milestones.
func (s *SentimentService) GenerateMoodTimeline(ctx context.Context, events []*models.TimelineEvent, period models.AggregationPeriod) *models.MoodTimeline {
	if period == "" {
		period = models.PeriodWeekly
	}
	s.logger.Info("Generating mood timeline",
		zap.Int("events", len(events)),
		zap.String("period", string(period)))

	scores := s.AnalyzeBatch(ctx, events)
	return BuildMoodTimeline(events, scores, period)
}

// BuildMoodTimeline is the pure aggregation half of mood analysis: given the
// score side-table it buckets events by period, averages each axis, majority-
// votes the bucket emotion, and detects milestones. Re-running it over the
// same inputs yields identical output.
func BuildMoodTimeline(events []*models.TimelineEvent, scores map[string]models.SentimentScore, period models.AggregationPeriod) *models.MoodTimeline {
	userID := ""
	if len(events) > 0 {
		userID = events[0].UserID
	}

	dataPoints := aggregateByPeriod(events, scores, period)

	return &models.MoodTimeline{
		UserID:     userID,
		DataPoints: dataPoints,
		Averages:   calculateAverages(dataPoints),
		Milestones: DetectMilestones(events, scores),
	}
}

// DetectMilestones flags events whose valence is an extreme outlier. Peaks
// and valleys are mutually exclusive by construction.
func DetectMilestones(events []*models.TimelineEvent, scores map[string]models.SentimentScore) []models.EmotionalMilestone {
	var milestones []models.EmotionalMilestone

	for _, event := range events {
		score, ok := scores[event.ID]
		if !ok {
			continue
		}

		intensity := math.Abs(score.Valence)
		if intensity <= milestoneThreshold {
			continue
		}

		var kind models.MilestoneType
		switch {
		case score.Valence > milestoneThreshold:
			kind = models.MilestonePeak
		case score.Valence < -milestoneThreshold:
			kind = models.MilestoneValley
		default:
			continue
		}

		milestones = append(milestones, models.EmotionalMilestone{
			Date:      event.Timestamp,
			Type:      kind,
			Emotion:   score.PrimaryEmotion,
			Intensity: intensity,
			Reason:    truncate(event.Content, 100),
			EventIDs:  []string{event.ID},
		})
	}

	sort.Slice(milestones, func(a, b int) bool {
		return milestones[a].Date.Before(milestones[b].Date)
	})
	return milestones
}

type periodKey struct {
	year  int
	month time.Month
	day   int
}

// periodKeyFor buckets a timestamp. The weekly key divides the day of the
// month by 7, so weeks reset at every calendar month boundary instead of
// rolling continuously. Product behavior; keep as is.
func periodKeyFor(t time.Time, period models.AggregationPeriod) periodKey {
	switch period {
	case models.PeriodDaily:
		return periodKey{year: t.Year(), month: t.Month(), day: t.Day()}
	case models.PeriodWeekly:
		return periodKey{year: t.Year(), month: t.Month(), day: t.Day() / 7}
	default: // monthly
		return periodKey{year: t.Year(), month: t.Month()}
	}
}

type moodBucket struct {
	date       time.Time
	scored     []models.SentimentScore
	emotions   map[models.Emotion]int
	order      []models.Emotion
	eventCount int
}

func aggregateByPeriod(events []*models.TimelineEvent, scores map[string]models.SentimentScore, period models.AggregationPeriod) []models.MoodDataPoint {
	buckets := make(map[periodKey]*moodBucket)

	for _, event := range events {
		key := periodKeyFor(event.Timestamp, period)
		b, ok := buckets[key]
		if !ok {
			b = &moodBucket{
				date:     event.Timestamp,
				emotions: make(map[models.Emotion]int),
			}
			buckets[key] = b
		}
		b.eventCount++

		score, scored := scores[event.ID]
		if !scored {
			continue
		}
		b.scored = append(b.scored, score)
		if _, seen := b.emotions[score.PrimaryEmotion]; !seen {
			b.order = append(b.order, score.PrimaryEmotion)
		}
		b.emotions[score.PrimaryEmotion]++
	}

	dataPoints := make([]models.MoodDataPoint, 0, len(buckets))
	for _, b := range buckets {
		if len(b.scored) == 0 {
			continue
		}

		var sumV, sumA, sumD float64
		for _, sc := range b.scored {
			sumV += sc.Valence
			sumA += sc.Arousal
			sumD += sc.Dominance
		}
		n := float64(len(b.scored))

		// Majority vote; ties go to the emotion encountered first.
		primary := b.order[0]
		best := 0
		for _, e := range b.order {
			if b.emotions[e] > best {
				primary = e
				best = b.emotions[e]
			}
		}

		dataPoints = append(dataPoints, models.MoodDataPoint{
			Date:           b.date,
			Valence:        sumV / n,
			Arousal:        sumA / n,
			Dominance:      sumD / n,
			PrimaryEmotion: primary,
			EventCount:     b.eventCount,
		})
	}

	sort.Slice(dataPoints, func(a, b int) bool {
		return dataPoints[a].Date.Before(dataPoints[b].Date)
	})
	return dataPoints
}

func calculateAverages(dataPoints []models.MoodDataPoint) models.MoodAverages {
	if len(dataPoints) == 0 {
		return models.MoodAverages{Valence: 0, Arousal: 0.5, Dominance: 0.5}
	}

	var sumV, sumA, sumD float64
	for _, dp := range dataPoints {
		sumV += dp.Valence
		sumA += dp.Arousal
		sumD += dp.Dominance
	}
	n := float64(len(dataPoints))

	return models.MoodAverages{
		Valence:   sumV / n,
		Arousal:   sumA / n,
		Dominance: sumD / n,
	}
}

// DefaultScore is the neutral fallback used whenever the oracle fails or
// returns something unusable.
func DefaultScore() models.SentimentScore {
	return models.SentimentScore{
		Valence:        0,
		Arousal:        0.5,
		Dominance:      0.5,
		PrimaryEmotion: models.EmotionNeutral,
		Confidence:     0,
	}
}

func sanitizeScore(r sentimentResponse) models.SentimentScore {
	return models.SentimentScore{
		Valence:        clamp(r.Valence, -1, 1),
		Arousal:        clamp(r.Arousal, 0, 1),
		Dominance:      clamp(r.Dominance, 0, 1),
		PrimaryEmotion: validateEmotion(r.PrimaryEmotion),
		Confidence:     clamp(r.Confidence, 0, 1),
	}
}

func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}

func validateEmotion(emotion string) models.Emotion {
	for _, e := range models.Emotions {
		if models.Emotion(emotion) == e {
			return e
		}
	}
	return models.EmotionNeutral
}
