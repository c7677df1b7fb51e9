package pipeline

import (
	"context"
	"fmt"

	"github.com/xaenox/biograph/internal/models"
	"github.com/xaenox/biograph/internal/storage"
)

// StoreTimelineSource builds timelines from the event store.
type StoreTimelineSource struct {
	store storage.Storage
}

func NewStoreTimelineSource(store storage.Storage) *StoreTimelineSource {
	return &StoreTimelineSource{store: store}
}

func (s *StoreTimelineSource) ConstructTimeline(ctx context.Context, userID string) (*models.Timeline, error) {
	events, err := s.store.GetEventsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading events for %s: %w", userID, err)
	}

	timeline := &models.Timeline{
		UserID:      userID,
		Events:      events,
		TotalEvents: len(events),
	}
	if len(events) > 0 {
		timeline.StartDate = events[0].Timestamp
		timeline.EndDate = events[len(events)-1].Timestamp
	}
	return timeline, nil
}
