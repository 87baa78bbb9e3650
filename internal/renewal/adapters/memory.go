package adapters

import (
	"context"
	"sync"

	"relet/internal/renewal"
	"relet/internal/renewal/ports"
	id "relet/pkg/domain"
	dErrors "relet/pkg/domain-errors"
)

// MemoryPaymentTracker is an in-process payment tracker used in dev mode and
// tests. It holds ordered history per lease behind a lock.
type MemoryPaymentTracker struct {
	mu      sync.RWMutex
	history map[id.LeaseID][]renewal.PaymentRecord
}

func NewMemoryPaymentTracker() *MemoryPaymentTracker {
	return &MemoryPaymentTracker{history: make(map[id.LeaseID][]renewal.PaymentRecord)}
}

// Record appends a payment to a lease's history.
func (m *MemoryPaymentTracker) Record(leaseID id.LeaseID, payment renewal.PaymentRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[leaseID] = append(m.history[leaseID], payment)
}

// Seed replaces a lease's history wholesale.
func (m *MemoryPaymentTracker) Seed(leaseID id.LeaseID, history []renewal.PaymentRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[leaseID] = append([]renewal.PaymentRecord(nil), history...)
}

func (m *MemoryPaymentTracker) History(_ context.Context, leaseID id.LeaseID) ([]renewal.PaymentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.history[leaseID]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNoPaymentHistory, "no payment history for lease %d", leaseID)
	}
	return append([]renewal.PaymentRecord(nil), h...), nil
}

// MemoryLeaseFactory is an in-process lease factory for dev mode and tests.
type MemoryLeaseFactory struct {
	mu    sync.RWMutex
	terms map[id.LeaseID]int64

	// RejectUpdates makes UpdateTerm fail without touching the stored term,
	// mimicking a factory that refuses the mutation.
	RejectUpdates bool
}

func NewMemoryLeaseFactory() *MemoryLeaseFactory {
	return &MemoryLeaseFactory{terms: make(map[id.LeaseID]int64)}
}

// SetTerm registers a lease with its current term.
func (m *MemoryLeaseFactory) SetTerm(leaseID id.LeaseID, term int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.terms[leaseID] = term
}

func (m *MemoryLeaseFactory) Term(_ context.Context, leaseID id.LeaseID) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	term, ok := m.terms[leaseID]
	if !ok {
		return 0, dErrors.Newf(dErrors.CodeLeaseNotFound, "lease %d not found", leaseID)
	}
	return term, nil
}

func (m *MemoryLeaseFactory) UpdateTerm(_ context.Context, leaseID id.LeaseID, newTerm int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RejectUpdates {
		return dErrors.Newf(dErrors.CodeUpdateFailed, "term update rejected for lease %d", leaseID)
	}
	if _, ok := m.terms[leaseID]; !ok {
		return dErrors.Newf(dErrors.CodeLeaseNotFound, "lease %d not found", leaseID)
	}
	m.terms[leaseID] = newTerm
	return nil
}

var (
	_ ports.PaymentTracker = (*MemoryPaymentTracker)(nil)
	_ ports.LeaseFactory   = (*MemoryLeaseFactory)(nil)
)
