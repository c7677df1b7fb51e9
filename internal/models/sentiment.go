package models

import "time"

type Emotion string

const (
	EmotionJoy         Emotion = "Joy"
	EmotionSadness     Emotion = "Sadness"
	EmotionAnger       Emotion = "Anger"
	EmotionFear        Emotion = "Fear"
	EmotionSurprise    Emotion = "Surprise"
	EmotionDisgust     Emotion = "Disgust"
	EmotionContentment Emotion = "Contentment"
	EmotionExcitement  Emotion = "Excitement"
	EmotionAnxiety     Emotion = "Anxiety"
	EmotionNeutral     Emotion = "Neutral"
)

// Emotions is the closed set a sentiment score may carry.
var Emotions = []Emotion{
	EmotionJoy,
	EmotionSadness,
	EmotionAnger,
	EmotionFear,
	EmotionSurprise,
	EmotionDisgust,
	EmotionContentment,
	EmotionExcitement,
	EmotionAnxiety,
	EmotionNeutral,
}

// SentimentScore is a three-axis affect reading for a single event.
type SentimentScore struct {
	Valence        float64 `json:"valence"`   // -1.0 (negative) to 1.0 (positive)
	Arousal        float64 `json:"arousal"`   // 0.0 (calm) to 1.0 (excited)
	Dominance      float64 `json:"dominance"` // 0.0 (powerless) to 1.0 (empowered)
	PrimaryEmotion Emotion `json:"primary_emotion"`
	Confidence     float64 `json:"confidence"` // 0.0 to 1.0
}

type AggregationPeriod string

const (
	PeriodDaily   AggregationPeriod = "daily"
	PeriodWeekly  AggregationPeriod = "weekly"
	PeriodMonthly AggregationPeriod = "monthly"
)

// MoodDataPoint is one aggregation bucket of per-event scores.
type MoodDataPoint struct {
	Date           time.Time `json:"date"`
	Valence        float64   `json:"valence"`
	Arousal        float64   `json:"arousal"`
	Dominance      float64   `json:"dominance"`
	PrimaryEmotion Emotion   `json:"primary_emotion"`
	EventCount     int       `json:"event_count"`
}

type MoodAverages struct {
	Valence   float64 `json:"valence"`
	Arousal   float64 `json:"arousal"`
	Dominance float64 `json:"dominance"`
}

type MilestoneType string

const (
	MilestonePeak   MilestoneType = "peak"
	MilestoneValley MilestoneType = "valley"
)

// EmotionalMilestone is a single event whose valence is an extreme outlier.
type EmotionalMilestone struct {
	Date      time.Time     `json:"date"`
	Type      MilestoneType `json:"type"`
	Emotion   Emotion       `json:"emotion"`
	Intensity float64       `json:"intensity"` // 0.0 to 1.0
	Reason    string        `json:"reason,omitempty"`
	EventIDs  []string      `json:"event_ids"`
}

// MoodTimeline is the complete emotional trajectory for a user.
type MoodTimeline struct {
	UserID     string               `json:"user_id"`
	DataPoints []MoodDataPoint      `json:"data_points"`
	Averages   MoodAverages         `json:"averages"`
	Milestones []EmotionalMilestone `json:"milestones"`
}
