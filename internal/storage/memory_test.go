package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/biograph/internal/models"
)

func TestMemoryStorage_EventsSortedAscending(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	base := time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)
	for _, offset := range []int{5, 1, 3} {
		require.NoError(t, store.SaveEvent(ctx, &models.TimelineEvent{
			ID:        string(rune('a' + offset)),
			UserID:    "user-1",
			Timestamp: base.Add(time.Duration(offset) * 24 * time.Hour),
			Content:   "entry",
		}))
	}

	events, err := store.GetEventsByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i := 1; i < len(events); i++ {
		assert.True(t, events[i-1].Timestamp.Before(events[i].Timestamp))
	}
}

func TestMemoryStorage_UnknownUser(t *testing.T) {
	store := NewMemoryStorage()

	events, err := store.GetEventsByUserID(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestMemoryStorage_BiographyRoundTrip(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	bio := &models.Biography{
		ID:     "bio_test",
		UserID: "user-1",
		Title:  "A Life in 2 Chapters",
		Style:  models.StyleChronological,
	}
	require.NoError(t, store.SaveBiography(ctx, bio))

	loaded, err := store.GetBiography(ctx, "bio_test")
	require.NoError(t, err)
	assert.Equal(t, bio, loaded)

	_, err = store.GetBiography(ctx, "missing")
	assert.Error(t, err)
}
