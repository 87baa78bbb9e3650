package renewal

import (
	dErrors "relet/pkg/domain-errors"
)

// CalculateOnTimeRatio computes the on-time payment ratio as an integer
// percent in [0, 100]. This is pure domain logic - no I/O, no side effects.
//
// The numerator is the on-time count over the WHOLE history while the
// denominator is capped at min(len(history), period). A long successful
// history is therefore never diluted by a large period setting; the result
// is not a sliding-window average over recent payments. Callers depend on
// this exact shape.
func CalculateOnTimeRatio(history []PaymentRecord, period int64) (int, error) {
	total := int64(len(history))
	onTime := int64(OnTimeCount(history))

	periodPayments := total
	if period < periodPayments {
		periodPayments = period
	}
	if periodPayments <= 0 {
		return 0, dErrors.New(dErrors.CodePeriodMismatch, "no payments within period")
	}

	// Integer floor division; counts are bounded well below overflow.
	ratio := int(onTime * 100 / periodPayments)
	if ratio > 100 {
		ratio = 100
	}
	return ratio, nil
}

// OnTimeCount counts the on-time payments across the whole history.
func OnTimeCount(history []PaymentRecord) int {
	n := 0
	for _, p := range history {
		if p.OnTime {
			n++
		}
	}
	return n
}

// MeetsThreshold reports whether the history satisfies the rules: the total
// payment count must reach MinPayments AND the on-time ratio must reach
// Threshold. Ratio calculation failure counts as ratio 0. Pure predicate.
func MeetsThreshold(history []PaymentRecord, rules LeaseRules) bool {
	ratio, err := CalculateOnTimeRatio(history, rules.Period)
	if err != nil {
		ratio = 0
	}
	return len(history) >= rules.MinPayments && ratio >= rules.Threshold
}
