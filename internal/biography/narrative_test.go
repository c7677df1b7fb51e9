package biography

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xaenox/biograph/internal/models"
)

func sampleChapter(id, title, summary string) *models.BiographyChapter {
	return &models.BiographyChapter{
		ID:               id,
		Title:            title,
		StartDate:        time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC),
		Summary:          summary,
		DominantCategory: models.CategoryCareer,
	}
}

func TestGenerateBiography_ComposesDocument(t *testing.T) {
	gen := &fakeGenerator{respond: func(string) (string, error) {
		return "It was a season of long days and steady progress at work.", nil
	}}
	svc := NewNarrativeService(gen, "test-model", zap.NewNop())

	chapters := []*models.BiographyChapter{
		sampleChapter("chapter_1", "New Beginnings", "A fresh start."),
		sampleChapter("chapter_2", "Momentum", "Things picked up."),
	}
	timeline := timelineOf(twoClusterEvents())

	bio, err := svc.GenerateBiography(context.Background(), chapters, timeline, models.StyleReflective)
	require.NoError(t, err)

	assert.Equal(t, "user-1", bio.UserID)
	assert.Equal(t, models.StyleReflective, bio.Style)
	require.Len(t, bio.Chapters, 2)
	assert.Equal(t, "chapter_1", bio.Chapters[0].ChapterID)
	assert.NotEmpty(t, bio.Introduction)
	assert.NotEmpty(t, bio.Conclusion)
	assert.Equal(t, 2, bio.Metadata.TotalChapters)
	assert.Greater(t, bio.Metadata.TotalWords, 0)
	assert.Greater(t, bio.Metadata.Cost, 0.0)
}

func TestGenerateBiography_OracleFailureUsesSummaries(t *testing.T) {
	svc := NewNarrativeService(failingGenerator(), "test-model", zap.NewNop())

	chapters := []*models.BiographyChapter{
		sampleChapter("chapter_1", "New Beginnings", "A chapter covering 3 events."),
	}

	bio, err := svc.GenerateBiography(context.Background(), chapters, timelineOf(twoClusterEvents()), models.StyleDocumentary)
	require.NoError(t, err)
	assert.Equal(t, "A chapter covering 3 events.", bio.Chapters[0].Narrative)
}

func TestGenerateBiography_NilTimeline(t *testing.T) {
	svc := NewNarrativeService(failingGenerator(), "test-model", zap.NewNop())

	_, err := svc.GenerateBiography(context.Background(), nil, nil, models.StyleChronological)
	assert.Error(t, err)
}

func TestEstimateCost(t *testing.T) {
	assert.Equal(t, 0.0, EstimateCost(0))
	assert.InDelta(t, 0.00266, EstimateCost(1000), 0.0001)
}
