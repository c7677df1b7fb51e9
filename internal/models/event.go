package models

import (
	"time"
)

type Category string

const (
	CategoryEducation         Category = "education"
	CategoryCareer            Category = "career"
	CategoryFamily            Category = "family"
	CategoryTravel            Category = "travel"
	CategoryAchievements      Category = "achievements"
	CategorySignificantEvents Category = "significant_events"
	CategoryOther             Category = "other"
)

// MajorCategories mark life transitions strong enough to cut a chapter on.
var MajorCategories = []Category{
	CategoryEducation,
	CategoryCareer,
	CategoryFamily,
	CategorySignificantEvents,
}

func (c Category) IsMajor() bool {
	for _, m := range MajorCategories {
		if c == m {
			return true
		}
	}
	return false
}

// TimelineEvent is a single imported life record: a post, an email, an upload.
type TimelineEvent struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Timestamp time.Time      `json:"timestamp"`
	Content   string         `json:"content"`
	Category  Category       `json:"category,omitempty"`
	Source    string         `json:"source,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Timeline holds a user's events sorted ascending by timestamp.
type Timeline struct {
	UserID      string           `json:"user_id"`
	Events      []*TimelineEvent `json:"events"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	TotalEvents int              `json:"total_events"`
}
