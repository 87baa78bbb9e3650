package ports

import (
	"context"

	id "relet/pkg/domain"
)

// LeaseFactory is the port onto the external lease factory, the sole owner
// of lease terms. The engine reads the current term and asks for the
// extended one to be persisted; it performs no compensating rollback.
type LeaseFactory interface {
	// Term returns the current term for a lease.
	// Unknown leases fail with LeaseNotFound.
	Term(ctx context.Context, leaseID id.LeaseID) (int64, error)

	// UpdateTerm persists the extended term. A rejected update fails with
	// UpdateFailed and leaves the current term unchanged.
	UpdateTerm(ctx context.Context, leaseID id.LeaseID, newTerm int64) error
}
