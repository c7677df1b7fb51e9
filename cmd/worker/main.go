package main

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xaenox/biograph/internal/ai"
	"github.com/xaenox/biograph/internal/biography"
	"github.com/xaenox/biograph/internal/enricher"
	"github.com/xaenox/biograph/internal/models"
	"github.com/xaenox/biograph/internal/pipeline"
	"github.com/xaenox/biograph/internal/storage"
	"github.com/xaenox/biograph/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	userIDs := os.Args[1:]
	if len(userIDs) == 0 {
		logger.Fatal("Usage: worker <user-id> [user-id ...]")
	}

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize storage
	var store storage.Storage
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		logger.Info("Using PostgreSQL storage")
		store, err = storage.NewPostgresStorage(storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		})
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Initialize oracle client and services
	generator := ai.NewOpenAIGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)

	var enr enricher.Enricher
	if cfg.Chapters.UseAI {
		enr = enricher.NewGPTEnricher(generator, cfg.OpenAI.Model, logger)
	} else {
		enr = enricher.NewKeywordEnricher()
	}

	p := pipeline.New(
		pipeline.NewStoreTimelineSource(store),
		enr,
		biography.NewSentimentService(generator, cfg.OpenAI.Model, logger),
		biography.NewChapterService(generator, cfg.OpenAI.Model, logger),
		biography.NewNarrativeService(generator, cfg.OpenAI.Model, logger),
		store,
		logger,
	)

	job := pipeline.Job{
		Style: models.NarrativeStyle(cfg.Worker.Style),
		Options: pipeline.Options{
			IncludeSentiment: cfg.Sentiment.Enabled,
			SentimentPeriod:  models.AggregationPeriod(cfg.Sentiment.Period),
			Chapters: models.ChapterOptions{
				MinEventsPerChapter:    cfg.Chapters.MinEventsPerChapter,
				MaxEventsPerChapter:    cfg.Chapters.MaxEventsPerChapter,
				MinChapterDurationDays: cfg.Chapters.MinChapterDurationDays,
				MaxChapterDurationDays: cfg.Chapters.MaxChapterDurationDays,
				UseAI:                  cfg.Chapters.UseAI,
			},
		},
	}

	// Bounded concurrency with a start-rate window across users. The
	// pipeline itself is strictly sequential per run.
	concurrency := cfg.Worker.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	startInterval := time.Duration(0)
	if cfg.Worker.JobsPerMinute > 0 {
		startInterval = time.Minute / time.Duration(cfg.Worker.JobsPerMinute)
	}
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, userID := range userIDs {
		if i > 0 {
			time.Sleep(startInterval)
		}
		sem <- struct{}{}
		wg.Add(1)

		go func(userID string) {
			defer wg.Done()
			defer func() { <-sem }()

			runJob := job
			runJob.UserID = userID

			result, err := p.Run(context.Background(), runJob, func(percent int) {
				logger.Info("Generation progress",
					zap.String("user_id", userID),
					zap.Int("percent", percent))
			})
			if err != nil {
				logger.Error("Biography generation failed",
					zap.String("user_id", userID),
					zap.Error(err))
				return
			}

			logger.Info("Biography generated",
				zap.String("user_id", userID),
				zap.String("biography_id", result.BiographyID),
				zap.Int("total_words", result.TotalWords),
				zap.Int("total_chapters", result.TotalChapters),
				zap.Float64("cost", result.Cost),
				zap.Int64("generation_time_ms", result.GenerationTimeMs))
		}(userID)
	}

	wg.Wait()
}
