// Package renewal holds the lease-renewal domain: rule records, payment
// history, renewal state, and the pure eligibility logic. No I/O lives here;
// orchestration sits in the service subpackage.
package renewal

import (
	id "relet/pkg/domain"
	dErrors "relet/pkg/domain-errors"
)

// Fallback rule fields used when a lease has no stored rules. The threshold,
// period, and grace ceiling come from live policy; these two are fixed.
const (
	FallbackDurationExtension int64 = 12
	FallbackMinPayments       int   = 6
)

// LeaseRules governs renewal eligibility for one lease. Fields are validated
// at write time; stored rules are assumed valid for their lifetime.
type LeaseRules struct {
	// Threshold is the minimum on-time ratio, an integer percent in (0, 100].
	Threshold int
	// Period is the lookback window in payment-count units, and the distance
	// in block heights between one renewal and the next eligibility point.
	Period int64
	// DurationExtension is the number of term units added per renewal.
	DurationExtension int64
	// MinPayments is the minimum payment count before renewal is considered.
	MinPayments int
	// GraceDays must not exceed the global grace ceiling at write time.
	GraceDays int64
}

// Validate checks the rule record against the grace ceiling in force.
// Checks run in a fixed order and the first violation wins, so callers see
// a stable error code for a given input.
func (r LeaseRules) Validate(graceCeiling int64) error {
	if r.Threshold <= 0 || r.Threshold > 100 {
		return dErrors.Newf(dErrors.CodeInvalidThreshold, "threshold %d outside (0, 100]", r.Threshold)
	}
	if r.Period <= 0 {
		return dErrors.Newf(dErrors.CodeInvalidPeriod, "period %d must be positive", r.Period)
	}
	if r.MinPayments <= 0 {
		return dErrors.Newf(dErrors.CodeMinPaymentsNotMet, "min payments %d must be positive", r.MinPayments)
	}
	if r.GraceDays > graceCeiling {
		return dErrors.Newf(dErrors.CodeGracePeriodExceeded, "grace days %d above ceiling %d", r.GraceDays, graceCeiling)
	}
	return nil
}

// PaymentRecord is one entry in a lease's payment history. The payment
// tracker owns these; the engine only reads the on-time classification.
type PaymentRecord struct {
	Amount    int64
	Timestamp int64
	OnTime    bool
}

// RenewalStatus is the per-lease renewal state machine, created lazily on
// the first renewal attempt.
type RenewalStatus struct {
	// LastRenewed is the block height of the last successful renewal, 0 if never.
	LastRenewed int64
	// NextEligible is the height before which renewal attempts are rejected.
	NextEligible int64
	// Active false means renewal is suspended; nothing in the core flips it
	// back, reactivation is a collaborator concern.
	Active bool
	// Extensions counts successful renewals.
	Extensions int64
}

// NewStatus is the default state for a lease with no renewal record yet.
func NewStatus() RenewalStatus {
	return RenewalStatus{Active: true}
}

// Evaluation is one append-only audit record of a renewal decision.
type Evaluation struct {
	LeaseID id.LeaseID
	ID      id.EvaluationID
	// Height is the block height at which the evaluation ran.
	Height       int64
	MetThreshold bool
	OnTimeCount  int
	TotalCount   int
	Ratio        int
}
