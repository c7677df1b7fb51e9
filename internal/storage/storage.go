package storage

import (
	"context"

	"github.com/xaenox/biograph/internal/models"
)

// Storage is the persistence surface for timeline events and finished
// biographies. Implementations return events already sorted ascending by
// timestamp.
type Storage interface {
	SaveEvent(ctx context.Context, event *models.TimelineEvent) error
	GetEventsByUserID(ctx context.Context, userID string) ([]*models.TimelineEvent, error)

	SaveBiography(ctx context.Context, biography *models.Biography) error
	GetBiography(ctx context.Context, id string) (*models.Biography, error)

	Close() error
}
