package models

import "time"

// ChapterBoundary is a candidate cut point between two adjacent events.
type ChapterBoundary struct {
	Index     int       `json:"index"`
	Timestamp time.Time `json:"timestamp"`
	Reason    string    `json:"reason"`
	Strength  float64   `json:"strength"` // 0-1, how strong the boundary is
}

// BiographyChapter is a contiguous slice of the timeline with a generated
// title and summary. Immutable once built.
type BiographyChapter struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	EventIDs         []string        `json:"event_ids"`
	Summary          string          `json:"summary"`
	DominantCategory Category        `json:"dominant_category"`
	Significance     int             `json:"significance"`
	Metadata         ChapterMetadata `json:"metadata"`
}

type ChapterMetadata struct {
	EventCount   int     `json:"event_count"`
	DurationDays int     `json:"duration_days"`
	AIGenerated  bool    `json:"ai_generated"`
	Confidence   float64 `json:"confidence"`
}

// ChapterOptions control segmentation and titling.
type ChapterOptions struct {
	MinEventsPerChapter    int  `json:"min_events_per_chapter"`
	MaxEventsPerChapter    int  `json:"max_events_per_chapter"` // soft limit, not enforced as a hard split
	MinChapterDurationDays int  `json:"min_chapter_duration_days"`
	MaxChapterDurationDays int  `json:"max_chapter_duration_days"`
	UseAI                  bool `json:"use_ai"`
}

func DefaultChapterOptions() ChapterOptions {
	return ChapterOptions{
		MinEventsPerChapter:    5,
		MaxEventsPerChapter:    50,
		MinChapterDurationDays: 7,
		MaxChapterDurationDays: 365,
		UseAI:                  true,
	}
}
