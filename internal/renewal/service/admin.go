package service

import (
	"context"

	id "relet/pkg/domain"
	"relet/pkg/platform/audit"
)

// Administrative policy mutations. Authorization lives in the policy itself
// (principal equality against the oracle); these wrappers add the audit
// trail and metrics so every accepted change is attributable.

// SetOracle rotates the oracle principal.
func (s *Service) SetOracle(ctx context.Context, caller, next id.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.policy.SetOracle(caller, next); err != nil {
		return err
	}
	s.emit(ctx, audit.Event{
		Principal: caller,
		Action:    string(audit.EventOracleRotated),
		Decision:  "updated",
	})
	s.metrics.IncrementConfigUpdate("oracle")
	return nil
}

// SetDefaultThreshold updates the default on-time threshold percent.
func (s *Service) SetDefaultThreshold(ctx context.Context, caller id.Principal, threshold int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.policy.SetDefaultThreshold(caller, threshold); err != nil {
		return err
	}
	s.emit(ctx, audit.Event{
		Principal: caller,
		Action:    string(audit.EventPolicyUpdated),
		Decision:  "updated",
		Reason:    "threshold",
	})
	s.metrics.IncrementConfigUpdate("threshold")
	return nil
}

// SetDefaultPeriod updates the default lookback period.
func (s *Service) SetDefaultPeriod(ctx context.Context, caller id.Principal, period int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.policy.SetDefaultPeriod(caller, period); err != nil {
		return err
	}
	s.emit(ctx, audit.Event{
		Principal: caller,
		Action:    string(audit.EventPolicyUpdated),
		Decision:  "updated",
		Reason:    "period",
	})
	s.metrics.IncrementConfigUpdate("period")
	return nil
}

// SetGracePeriod updates the global grace ceiling.
func (s *Service) SetGracePeriod(ctx context.Context, caller id.Principal, grace int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.policy.SetGracePeriod(caller, grace); err != nil {
		return err
	}
	s.emit(ctx, audit.Event{
		Principal: caller,
		Action:    string(audit.EventPolicyUpdated),
		Decision:  "updated",
		Reason:    "grace",
	})
	s.metrics.IncrementConfigUpdate("grace")
	return nil
}
