package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xaenox/biograph/internal/biography"
	"github.com/xaenox/biograph/internal/enricher"
	"github.com/xaenox/biograph/internal/models"
)

// ProgressFunc receives the completion percentage after each stage, in
// increasing order: 10, 30, 50, 70, 90, 100.
type ProgressFunc func(percent int)

// TimelineSource provides the construct stage: a user's events, sorted
// ascending by timestamp.
type TimelineSource interface {
	ConstructTimeline(ctx context.Context, userID string) (*models.Timeline, error)
}

// BiographyStore persists the finished document. Nothing is written before
// the run completes.
type BiographyStore interface {
	SaveBiography(ctx context.Context, biography *models.Biography) error
}

type Options struct {
	IncludeSentiment bool
	SentimentPeriod  models.AggregationPeriod
	Chapters         models.ChapterOptions
}

type Job struct {
	UserID  string
	Style   models.NarrativeStyle
	Options Options
}

type Result struct {
	BiographyID      string  `json:"biography_id"`
	TotalWords       int     `json:"total_words"`
	TotalChapters    int     `json:"total_chapters"`
	Cost             float64 `json:"cost"`
	GenerationTimeMs int64   `json:"generation_time_ms"`
}

// Pipeline runs biography generation as six strictly ordered stages. Any
// stage error aborts the whole run; the caller re-invokes from scratch.
type Pipeline struct {
	source    TimelineSource
	enricher  enricher.Enricher
	sentiment *biography.SentimentService
	chapters  *biography.ChapterService
	narrative *biography.NarrativeService
	store     BiographyStore // optional
	logger    *zap.Logger
}

func New(
	source TimelineSource,
	enr enricher.Enricher,
	sentiment *biography.SentimentService,
	chapters *biography.ChapterService,
	narrative *biography.NarrativeService,
	store BiographyStore,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		source:    source,
		enricher:  enr,
		sentiment: sentiment,
		chapters:  chapters,
		narrative: narrative,
		store:     store,
		logger:    logger,
	}
}

func (p *Pipeline) Run(ctx context.Context, job Job, report ProgressFunc) (*Result, error) {
	if report == nil {
		report = func(int) {}
	}
	started := time.Now()

	p.logger.Info("Starting biography generation",
		zap.String("user_id", job.UserID),
		zap.String("style", string(job.Style)))

	// Stage 1: construct timeline
	report(10)
	timeline, err := p.source.ConstructTimeline(ctx, job.UserID)
	if err != nil {
		return nil, fmt.Errorf("construct timeline: %w", err)
	}

	// Stage 2: enrich and categorize
	report(30)
	timeline, err = p.enricher.EnrichTimeline(ctx, timeline)
	if err != nil {
		return nil, fmt.Errorf("enrich timeline: %w", err)
	}

	// Stage 3: sentiment analysis. The checkpoint fires even when the
	// stage is configured off, so progress advances identically.
	report(50)
	if job.Options.IncludeSentiment {
		period := job.Options.SentimentPeriod
		if period == "" {
			period = models.PeriodWeekly
		}
		mood := p.sentiment.GenerateMoodTimeline(ctx, timeline.Events, period)
		p.logger.Info("Mood timeline generated",
			zap.Int("data_points", len(mood.DataPoints)),
			zap.Int("milestones", len(mood.Milestones)),
			zap.Float64("avg_valence", mood.Averages.Valence))
	}

	// Stage 4: chapter generation
	report(70)
	chapters := p.chapters.GenerateChapters(ctx, timeline, job.Options.Chapters)

	// Stage 5: narrative generation
	report(90)
	bio, err := p.narrative.GenerateBiography(ctx, chapters, timeline, job.Style)
	if err != nil {
		return nil, fmt.Errorf("generate narrative: %w", err)
	}
	bio.Metadata.GenerationTimeMs = time.Since(started).Milliseconds()

	if p.store != nil {
		if err := p.store.SaveBiography(ctx, bio); err != nil {
			return nil, fmt.Errorf("save biography: %w", err)
		}
	}

	// Stage 6: complete
	report(100)

	p.logger.Info("Biography generation complete",
		zap.String("biography_id", bio.ID),
		zap.Int("chapters", bio.Metadata.TotalChapters),
		zap.Int64("elapsed_ms", bio.Metadata.GenerationTimeMs))

	return &Result{
		BiographyID:      bio.ID,
		TotalWords:       bio.Metadata.TotalWords,
		TotalChapters:    bio.Metadata.TotalChapters,
		Cost:             bio.Metadata.Cost,
		GenerationTimeMs: bio.Metadata.GenerationTimeMs,
	}, nil
}
