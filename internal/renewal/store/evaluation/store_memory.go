package evaluation

import (
	"context"
	"sort"
	"sync"

	"relet/internal/renewal"
	id "relet/pkg/domain"
	dErrors "relet/pkg/domain-errors"
)

type recordKey struct {
	leaseID id.LeaseID
	evalID  id.EvaluationID
}

// InMemoryStore keeps the append-only evaluation history keyed by
// (lease, evaluation id). Records are write-once; a duplicate append is a
// programming error and is rejected.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[recordKey]renewal.Evaluation
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[recordKey]renewal.Evaluation)}
}

func (s *InMemoryStore) Append(_ context.Context, ev renewal.Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := recordKey{leaseID: ev.LeaseID, evalID: ev.ID}
	if _, exists := s.records[k]; exists {
		return dErrors.Newf(dErrors.CodeInternal, "evaluation %d for lease %d already recorded", ev.ID, ev.LeaseID)
	}
	s.records[k] = ev
	return nil
}

// Get returns one evaluation record, or nil when absent.
func (s *InMemoryStore) Get(_ context.Context, leaseID id.LeaseID, evalID id.EvaluationID) (*renewal.Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if ev, ok := s.records[recordKey{leaseID: leaseID, evalID: evalID}]; ok {
		return &ev, nil
	}
	return nil, nil
}

// ListByLease returns a lease's evaluations ordered by evaluation ID.
func (s *InMemoryStore) ListByLease(_ context.Context, leaseID id.LeaseID) ([]renewal.Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var evs []renewal.Evaluation
	for k, ev := range s.records {
		if k.leaseID == leaseID {
			evs = append(evs, ev)
		}
	}
	sort.Slice(evs, func(i, j int) bool { return evs[i].ID < evs[j].ID })
	return evs, nil
}
