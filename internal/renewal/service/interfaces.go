package service

import (
	"context"

	"relet/internal/renewal"
	id "relet/pkg/domain"
	"relet/pkg/platform/audit"
)

// RuleStore defines the persistence interface for per-lease renewal rules.
// Absence is a nil record, not an error; callers fall back to policy defaults.
type RuleStore interface {
	Get(ctx context.Context, leaseID id.LeaseID) (*renewal.LeaseRules, error)
	Put(ctx context.Context, leaseID id.LeaseID, rules renewal.LeaseRules) error
}

// StatusStore defines the persistence interface for per-lease renewal state.
type StatusStore interface {
	Get(ctx context.Context, leaseID id.LeaseID) (*renewal.RenewalStatus, error)
	Put(ctx context.Context, leaseID id.LeaseID, status renewal.RenewalStatus) error
}

// EvaluationStore defines the persistence interface for the append-only
// evaluation history.
type EvaluationStore interface {
	Append(ctx context.Context, ev renewal.Evaluation) error
	Get(ctx context.Context, leaseID id.LeaseID, evalID id.EvaluationID) (*renewal.Evaluation, error)
	ListByLease(ctx context.Context, leaseID id.LeaseID) ([]renewal.Evaluation, error)
}

// AuditPublisher defines the interface for publishing audit events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
