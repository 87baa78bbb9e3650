package status

import (
	"context"
	"sync"

	"relet/internal/renewal"
	id "relet/pkg/domain"
)

// InMemoryStore holds per-lease renewal state behind a lock.
type InMemoryStore struct {
	mu       sync.RWMutex
	statuses map[id.LeaseID]renewal.RenewalStatus
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{statuses: make(map[id.LeaseID]renewal.RenewalStatus)}
}

// Get returns the stored status, or nil when the lease has no record yet.
// Absence is not an error; callers resolve it to the default state.
func (s *InMemoryStore) Get(_ context.Context, leaseID id.LeaseID) (*renewal.RenewalStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.statuses[leaseID]; ok {
		return &st, nil
	}
	return nil, nil
}

// Put inserts or replaces the lease's renewal status.
func (s *InMemoryStore) Put(_ context.Context, leaseID id.LeaseID, st renewal.RenewalStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[leaseID] = st
	return nil
}
