package memory

import (
	"context"
	"sync"

	"github.com/sumit221292/zzeep/internal/core/domain"
)

// Store is an in-memory PresenceStore. Suitable for single-process
// deployments and tests.
type Store struct {
	mu       sync.RWMutex
	statuses map[string]string
}

func NewStore() *Store {
	return &Store{
		statuses: make(map[string]string),
	}
}

func (s *Store) Set(_ context.Context, userID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[userID] = status
	return nil
}

func (s *Store) Get(_ context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status, ok := s.statuses[userID]
	if !ok {
		return domain.StatusOffline, nil
	}
	return status, nil
}

func (s *Store) Close() error {
	return nil
}
