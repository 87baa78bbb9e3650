package renewal

import (
	"sync"

	id "relet/pkg/domain"
	dErrors "relet/pkg/domain-errors"
)

// Policy holds the global renewal policy: the oracle principal and the
// defaults applied to leases without stored rules. One instance lives per
// engine; setters are gated on the oracle so there is no ambient state.
type Policy struct {
	mu               sync.RWMutex
	oracle           id.Principal
	defaultThreshold int
	defaultPeriod    int64
	gracePeriod      int64
	maxEvaluations   int64
}

// PolicyDefaults seeds a Policy at boot.
type PolicyDefaults struct {
	Oracle           id.Principal
	DefaultThreshold int
	DefaultPeriod    int64
	GracePeriod      int64
	MaxEvaluations   int64
}

// NewPolicy builds the policy state from boot defaults.
func NewPolicy(d PolicyDefaults) *Policy {
	return &Policy{
		oracle:           d.Oracle,
		defaultThreshold: d.DefaultThreshold,
		defaultPeriod:    d.DefaultPeriod,
		gracePeriod:      d.GracePeriod,
		maxEvaluations:   d.MaxEvaluations,
	}
}

// IsOracle reports whether caller is the authorized oracle. Principal
// equality is the whole check; identity verification happens upstream.
func (p *Policy) IsOracle(caller id.Principal) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return caller == p.oracle
}

// requireOracle is the shared gate for administrative setters.
func (p *Policy) requireOracle(caller id.Principal) error {
	if !p.IsOracle(caller) {
		return dErrors.New(dErrors.CodeOracleNotVerified, "caller is not the oracle")
	}
	return nil
}

// SetOracle rotates the oracle principal. Unlike the other setters this
// fails with NotAuthorized, an asymmetry kept for caller compatibility.
func (p *Policy) SetOracle(caller, next id.Principal) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if caller != p.oracle {
		return dErrors.New(dErrors.CodeNotAuthorized, "caller is not the oracle")
	}
	p.oracle = next
	return nil
}

// SetDefaultThreshold updates the default on-time threshold percent.
func (p *Policy) SetDefaultThreshold(caller id.Principal, threshold int) error {
	if err := p.requireOracle(caller); err != nil {
		return err
	}
	if threshold <= 0 || threshold > 100 {
		return dErrors.Newf(dErrors.CodeInvalidThreshold, "threshold %d outside (0, 100]", threshold)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.defaultThreshold = threshold
	return nil
}

// SetDefaultPeriod updates the default lookback period.
func (p *Policy) SetDefaultPeriod(caller id.Principal, period int64) error {
	if err := p.requireOracle(caller); err != nil {
		return err
	}
	if period <= 0 {
		return dErrors.Newf(dErrors.CodeInvalidPeriod, "period %d must be positive", period)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.defaultPeriod = period
	return nil
}

// SetGracePeriod updates the global grace ceiling. The ceiling itself is
// not range-checked; only per-lease GraceDays is bounded against it.
func (p *Policy) SetGracePeriod(caller id.Principal, grace int64) error {
	if err := p.requireOracle(caller); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gracePeriod = grace
	return nil
}

// GracePeriod returns the current grace ceiling.
func (p *Policy) GracePeriod() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.gracePeriod
}

// MaxEvaluations returns the soft ceiling on evaluation volume. It bounds
// expected volume only; nothing enforces it as a hard cap.
func (p *Policy) MaxEvaluations() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.maxEvaluations
}

// FallbackRules builds the rule tuple for a lease with no stored rules,
// computed fresh from current defaults at each evaluation.
func (p *Policy) FallbackRules() LeaseRules {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return LeaseRules{
		Threshold:         p.defaultThreshold,
		Period:            p.defaultPeriod,
		DurationExtension: FallbackDurationExtension,
		MinPayments:       FallbackMinPayments,
		GraceDays:         p.gracePeriod,
	}
}
