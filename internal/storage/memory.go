package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/xaenox/biograph/internal/models"
)

// MemoryStorage keeps events and biographies in process memory. Used for
// tests and local development.
type MemoryStorage struct {
	mu          sync.RWMutex
	events      map[string][]*models.TimelineEvent // by user ID
	biographies map[string]*models.Biography
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		events:      make(map[string][]*models.TimelineEvent),
		biographies: make(map[string]*models.Biography),
	}
}

func (s *MemoryStorage) SaveEvent(_ context.Context, event *models.TimelineEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[event.UserID] = append(s.events[event.UserID], event)
	return nil
}

func (s *MemoryStorage) GetEventsByUserID(_ context.Context, userID string) ([]*models.TimelineEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]*models.TimelineEvent, len(s.events[userID]))
	copy(events, s.events[userID])

	sort.Slice(events, func(a, b int) bool {
		return events[a].Timestamp.Before(events[b].Timestamp)
	})
	return events, nil
}

func (s *MemoryStorage) SaveBiography(_ context.Context, biography *models.Biography) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.biographies[biography.ID] = biography
	return nil
}

func (s *MemoryStorage) GetBiography(_ context.Context, id string) (*models.Biography, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	biography, exists := s.biographies[id]
	if !exists {
		return nil, fmt.Errorf("biography not found: %s", id)
	}
	return biography, nil
}

func (s *MemoryStorage) Close() error {
	return nil
}
