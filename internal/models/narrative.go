package models

import "time"

type NarrativeStyle string

const (
	StyleChronological NarrativeStyle = "chronological"
	StyleThematic      NarrativeStyle = "thematic"
	StyleReflective    NarrativeStyle = "reflective"
	StyleDocumentary   NarrativeStyle = "documentary"
	StyleHighlights    NarrativeStyle = "highlights"
)

// ChapterNarrative is one chapter rendered as prose.
type ChapterNarrative struct {
	ChapterID string `json:"chapter_id"`
	Title     string `json:"title"`
	Narrative string `json:"narrative"`
	WordCount int    `json:"word_count"`
}

type BiographyMetadata struct {
	TotalWords       int       `json:"total_words"`
	TotalChapters    int       `json:"total_chapters"`
	GeneratedAt      time.Time `json:"generated_at"`
	Cost             float64   `json:"cost"` // estimated, US dollars
	GenerationTimeMs int64     `json:"generation_time_ms"`
}

// Biography is the assembled document for one generation run.
type Biography struct {
	ID           string             `json:"id"`
	UserID       string             `json:"user_id"`
	Title        string             `json:"title"`
	Style        NarrativeStyle     `json:"style"`
	Chapters     []ChapterNarrative `json:"chapters"`
	Introduction string             `json:"introduction"`
	Conclusion   string             `json:"conclusion"`
	Metadata     BiographyMetadata  `json:"metadata"`
}
