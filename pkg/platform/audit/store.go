package audit

import "context"

// Store persists audit events. Implementations must treat events as
// append-only; nothing in the engine mutates or deletes them.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByLease(ctx context.Context, leaseID int64) ([]Event, error)
}
