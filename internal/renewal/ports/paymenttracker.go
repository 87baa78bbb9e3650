package ports

import (
	"context"

	"relet/internal/renewal"
	id "relet/pkg/domain"
)

// PaymentTracker is the read-only port onto the external payment tracker.
// The engine never mutates payment history; it only consumes the ordered
// sequence per lease.
type PaymentTracker interface {
	// History returns the payment sequence for a lease, oldest first.
	// Unknown leases fail with NoPaymentHistory.
	History(ctx context.Context, leaseID id.LeaseID) ([]renewal.PaymentRecord, error)
}
