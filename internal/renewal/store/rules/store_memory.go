package rules

import (
	"context"
	"sync"

	"relet/internal/renewal"
	id "relet/pkg/domain"
)

// InMemoryStore holds per-lease rule records behind a lock. Replacement is
// atomic: a rule record is either the old tuple or the new one, never a mix.
type InMemoryStore struct {
	mu    sync.RWMutex
	rules map[id.LeaseID]renewal.LeaseRules
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{rules: make(map[id.LeaseID]renewal.LeaseRules)}
}

// Get returns the stored rules, or nil when the lease has none.
func (s *InMemoryStore) Get(_ context.Context, leaseID id.LeaseID) (*renewal.LeaseRules, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.rules[leaseID]; ok {
		return &r, nil
	}
	return nil, nil
}

// Put inserts or replaces the lease's rule record.
func (s *InMemoryStore) Put(_ context.Context, leaseID id.LeaseID, r renewal.LeaseRules) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[leaseID] = r
	return nil
}
