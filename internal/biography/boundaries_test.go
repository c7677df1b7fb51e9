package biography

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/biograph/internal/models"
)

func makeEvents(start time.Time, gaps []time.Duration, category models.Category) []*models.TimelineEvent {
	events := make([]*models.TimelineEvent, 0, len(gaps)+1)
	ts := start
	events = append(events, &models.TimelineEvent{
		ID:        "event-0",
		UserID:    "user-1",
		Timestamp: ts,
		Content:   "event 0",
		Category:  category,
	})
	for i, gap := range gaps {
		ts = ts.Add(gap)
		events = append(events, &models.TimelineEvent{
			ID:        fmt.Sprintf("event-%d", i+1),
			UserID:    "user-1",
			Timestamp: ts,
			Content:   fmt.Sprintf("event %d", i+1),
			Category:  category,
		})
	}
	return events
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

func TestDetectBoundaries_UniformTimeline(t *testing.T) {
	// Same category, small gaps, no year change: no boundaries at all.
	start := time.Date(2020, time.March, 1, 12, 0, 0, 0, time.UTC)
	gaps := make([]time.Duration, 9)
	for i := range gaps {
		gaps[i] = days(2)
	}
	events := makeEvents(start, gaps, models.CategoryOther)

	boundaries := DetectBoundaries(events, 7, 365)
	assert.Empty(t, boundaries)
}

func TestDetectBoundaries_LargeGapFullStrength(t *testing.T) {
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	events := makeEvents(start, []time.Duration{days(400)}, models.CategoryOther)

	boundaries := DetectBoundaries(events, 7, 365)
	require.Len(t, boundaries, 1)
	assert.Equal(t, 1, boundaries[0].Index)
	assert.Equal(t, 1.0, boundaries[0].Strength)
	assert.Contains(t, boundaries[0].Reason, "Significant time gap")
}

func TestDetectBoundaries_YearBoundary(t *testing.T) {
	// All-December then all-January, small gaps, one category: exactly one
	// boundary at the year transition.
	events := []*models.TimelineEvent{}
	for i, day := range []int{28, 29, 30, 31} {
		events = append(events, &models.TimelineEvent{
			ID:        fmt.Sprintf("dec-%d", i),
			Timestamp: time.Date(2020, time.December, day, 10, 0, 0, 0, time.UTC),
			Category:  models.CategoryOther,
		})
	}
	for i, day := range []int{2, 3, 4, 5} {
		events = append(events, &models.TimelineEvent{
			ID:        fmt.Sprintf("jan-%d", i),
			Timestamp: time.Date(2021, time.January, day, 10, 0, 0, 0, time.UTC),
			Category:  models.CategoryOther,
		})
	}

	boundaries := DetectBoundaries(events, 7, 365)
	require.Len(t, boundaries, 1)
	assert.Equal(t, 4, boundaries[0].Index)
	assert.Equal(t, 0.5, boundaries[0].Strength)
	assert.Contains(t, boundaries[0].Reason, "Year boundary")
}

func TestDetectBoundaries_ClusterGapKeepsFirstReason(t *testing.T) {
	// A 120-day gap scores 120/365 on the time-gap signal and 0.4 on the
	// cluster signal; strength is the max but the reason stays with the
	// first signal that fired.
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	events := makeEvents(start, []time.Duration{days(120)}, models.CategoryOther)

	boundaries := DetectBoundaries(events, 7, 365)
	require.Len(t, boundaries, 1)
	assert.InDelta(t, 0.4, boundaries[0].Strength, 1e-9)
	assert.Contains(t, boundaries[0].Reason, "Significant time gap: 120 days")
}

func TestDetectBoundaries_MajorCategoryShift(t *testing.T) {
	start := time.Date(2020, time.May, 1, 0, 0, 0, 0, time.UTC)
	events := makeEvents(start, []time.Duration{days(1)}, models.CategoryOther)
	events[1].Category = models.CategoryCareer

	boundaries := DetectBoundaries(events, 7, 365)
	require.Len(t, boundaries, 1)
	assert.Equal(t, 0.7, boundaries[0].Strength)
	assert.Contains(t, boundaries[0].Reason, "Major category change")
}

func TestDetectBoundaries_MinorCategoryShiftIgnored(t *testing.T) {
	start := time.Date(2020, time.May, 1, 0, 0, 0, 0, time.UTC)
	events := makeEvents(start, []time.Duration{days(1)}, models.CategoryTravel)
	events[1].Category = models.CategoryOther

	boundaries := DetectBoundaries(events, 7, 365)
	assert.Empty(t, boundaries)
}

func TestDetectBoundaries_SpacingFilterRunsInStrengthOrder(t *testing.T) {
	// Boundaries at indices 10, 12 and 30, all equal strength. In sorted
	// order the filter keeps 10, drops 12 (distance 2), keeps 30.
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	gaps := make([]time.Duration, 39)
	for i := range gaps {
		gaps[i] = 24 * time.Hour
	}
	events := makeEvents(start, gaps, models.CategoryOther)
	for i := 10; i < 12; i++ {
		events[i].Category = models.CategoryCareer
	}
	for i := 12; i < 30; i++ {
		events[i].Category = models.CategoryFamily
	}
	for i := 30; i < len(events); i++ {
		events[i].Category = models.CategoryEducation
	}

	boundaries := DetectBoundaries(events, 7, 365)
	require.Len(t, boundaries, 2)
	assert.Equal(t, 10, boundaries[0].Index)
	assert.Equal(t, 30, boundaries[1].Index)
}

func TestDetectBoundaries_SortedAscendingByIndex(t *testing.T) {
	// A weaker early boundary and a stronger late one: output still comes
	// back in chronological order.
	start := time.Date(2020, time.February, 1, 0, 0, 0, 0, time.UTC)
	gaps := make([]time.Duration, 19)
	for i := range gaps {
		gaps[i] = 24 * time.Hour
	}
	gaps[4] = days(100)  // index 5: strength 100/365
	gaps[14] = days(300) // index 15: strength 300/365
	events := makeEvents(start, gaps, models.CategoryOther)

	boundaries := DetectBoundaries(events, 7, 365)
	require.Len(t, boundaries, 2)
	assert.Equal(t, 5, boundaries[0].Index)
	assert.Equal(t, 15, boundaries[1].Index)
	assert.Greater(t, boundaries[1].Strength, boundaries[0].Strength)
}
