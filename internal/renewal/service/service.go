package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"relet/internal/platform/clock"
	"relet/internal/renewal"
	renewalmetrics "relet/internal/renewal/metrics"
	"relet/internal/renewal/ports"
	id "relet/pkg/domain"
	dErrors "relet/pkg/domain-errors"
	"relet/pkg/platform/audit"
	"relet/pkg/requestcontext"
)

// Service orchestrates renewal decisions: it resolves rules, pulls payment
// history from the tracker, applies the threshold logic, drives the lease
// factory, and records the audit trail.
//
// Mutating operations are serialized by a single mutex. Each call runs to
// completion with no partial visibility, mirroring the transactional model
// the engine expects from its host.
type Service struct {
	mu sync.Mutex

	policy   *renewal.Policy
	rules    RuleStore
	statuses StatusStore
	evals    EvaluationStore
	payments ports.PaymentTracker
	factory  ports.LeaseFactory
	clock    clock.BlockClock

	// nextEvalID is process-wide, monotonically increasing, starting at 0.
	nextEvalID id.EvaluationID

	logger  *slog.Logger
	auditor AuditPublisher
	metrics *renewalmetrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = publisher
	}
}

func WithMetrics(m *renewalmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(
	policy *renewal.Policy,
	rules RuleStore,
	statuses StatusStore,
	evals EvaluationStore,
	payments ports.PaymentTracker,
	factory ports.LeaseFactory,
	blocks clock.BlockClock,
	opts ...Option,
) (*Service, error) {
	if policy == nil {
		return nil, fmt.Errorf("policy is required")
	}
	if rules == nil {
		return nil, fmt.Errorf("rule store is required")
	}
	if statuses == nil {
		return nil, fmt.Errorf("status store is required")
	}
	if evals == nil {
		return nil, fmt.Errorf("evaluation store is required")
	}
	if payments == nil {
		return nil, fmt.Errorf("payment tracker is required")
	}
	if factory == nil {
		return nil, fmt.Errorf("lease factory is required")
	}
	if blocks == nil {
		return nil, fmt.Errorf("block clock is required")
	}

	s := &Service{
		policy:   policy,
		rules:    rules,
		statuses: statuses,
		evals:    evals,
		payments: payments,
		factory:  factory,
		clock:    blocks,
		logger:   slog.Default(),
		tracer:   otel.Tracer("relet/internal/renewal/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Policy exposes the global policy state for administrative handlers.
func (s *Service) Policy() *renewal.Policy {
	return s.policy
}

// SetLeaseRules validates and stores a lease's rule record. Open to any
// caller; the caller identity only feeds the audit trail. Validation fully
// precedes the write, so a rejected record never partially replaces the old.
func (s *Service) SetLeaseRules(ctx context.Context, caller id.Principal, leaseID id.LeaseID, rules renewal.LeaseRules) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !leaseID.Valid() {
		return dErrors.Newf(dErrors.CodeInvalidLeaseID, "lease id %d must be positive", leaseID)
	}
	if err := rules.Validate(s.policy.GracePeriod()); err != nil {
		return err
	}
	if err := s.rules.Put(ctx, leaseID, rules); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store lease rules")
	}

	s.emit(ctx, audit.Event{
		LeaseID:   leaseID,
		Principal: caller,
		Action:    string(audit.EventRulesUpdated),
		Decision:  "updated",
	})
	s.metrics.IncrementConfigUpdate("lease_rules")
	return nil
}

// CheckAndRenew runs one automatic renewal attempt and returns the new term
// on success. No state is mutated on any failure path.
func (s *Service) CheckAndRenew(ctx context.Context, leaseID id.LeaseID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkAndRenew(ctx, leaseID)
}

// checkAndRenew is the locked renewal path shared with ManualEvaluation.
func (s *Service) checkAndRenew(ctx context.Context, leaseID id.LeaseID) (newTerm int64, err error) {
	ctx, span := s.tracer.Start(ctx, "renewal.CheckAndRenew")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.ObserveEvaluateLatency(time.Since(start))
		if err != nil {
			reason := dErrors.CodeOf(err).String()
			s.metrics.IncrementOutcome(reason)
			s.emit(ctx, audit.Event{
				LeaseID:  leaseID,
				Action:   string(audit.EventRenewalDenied),
				Decision: "denied",
				Reason:   reason,
			})
		}
	}()

	if !leaseID.Valid() {
		return 0, dErrors.Newf(dErrors.CodeInvalidLeaseID, "lease id %d must be positive", leaseID)
	}

	rules, err := s.resolveRules(ctx, leaseID)
	if err != nil {
		return 0, err
	}

	// Collaborator failures propagate verbatim; the tracker owns history.
	history, err := s.payments.History(ctx, leaseID)
	if err != nil {
		return 0, err
	}

	status, err := s.resolveStatus(ctx, leaseID)
	if err != nil {
		return 0, err
	}
	if !status.Active {
		return 0, dErrors.Newf(dErrors.CodeRenewalInProgress, "renewal suspended for lease %d", leaseID)
	}

	now := s.clock.Height()
	if now < status.NextEligible {
		return 0, dErrors.Newf(dErrors.CodeGracePeriodExceeded, "lease %d not eligible until height %d", leaseID, status.NextEligible)
	}

	if !renewal.MeetsThreshold(history, rules) {
		return 0, dErrors.Newf(dErrors.CodeThresholdFailed, "lease %d below renewal threshold", leaseID)
	}

	currentTerm, err := s.factory.Term(ctx, leaseID)
	if err != nil {
		return 0, err
	}

	newTerm = currentTerm + rules.DurationExtension
	if err := s.factory.UpdateTerm(ctx, leaseID, newTerm); err != nil {
		// The factory keeps the old term; nothing to roll back here.
		return 0, err
	}

	if err := s.advanceState(ctx, leaseID, rules, history, status, now); err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "lease renewed",
		"request_id", requestcontext.RequestID(ctx),
		"lease_id", leaseID,
		"new_term", newTerm,
		"height", now,
	)
	s.metrics.IncrementOutcome("renewed")
	s.emit(ctx, audit.Event{
		LeaseID:  leaseID,
		Action:   string(audit.EventRenewalSucceeded),
		Decision: "renewed",
	})
	return newTerm, nil
}

// advanceState moves the renewal state machine and appends the evaluation
// record after the factory accepted the new term.
func (s *Service) advanceState(ctx context.Context, leaseID id.LeaseID, rules renewal.LeaseRules, history []renewal.PaymentRecord, status renewal.RenewalStatus, now int64) error {
	next := renewal.RenewalStatus{
		LastRenewed:  now,
		NextEligible: now + rules.Period,
		Active:       true,
		Extensions:   status.Extensions + 1,
	}
	if err := s.statuses.Put(ctx, leaseID, next); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to advance renewal status")
	}

	// Recomputed for the audit record; calculation failure reads as 0.
	ratio, err := renewal.CalculateOnTimeRatio(history, rules.Period)
	if err != nil {
		ratio = 0
	}
	ev := renewal.Evaluation{
		LeaseID:      leaseID,
		ID:           s.nextEvalID,
		Height:       now,
		MetThreshold: true,
		OnTimeCount:  renewal.OnTimeCount(history),
		TotalCount:   len(history),
		Ratio:        ratio,
	}
	if err := s.evals.Append(ctx, ev); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append evaluation record")
	}
	s.nextEvalID++

	// Soft ceiling only: volume past this point is unexpected but permitted.
	if max := s.policy.MaxEvaluations(); max > 0 && int64(s.nextEvalID) > max {
		s.logger.WarnContext(ctx, "evaluation volume above soft ceiling",
			"count", int64(s.nextEvalID),
			"ceiling", max,
		)
	}
	return nil
}

// ManualEvaluation is the oracle-gated evaluation trigger. It reports
// whether the lease was renewed; a delegated renewal failure is folded into
// renewed=false rather than surfaced, so callers get "ran but did not renew"
// and the denial detail lands in the audit trail instead.
func (s *Service) ManualEvaluation(ctx context.Context, caller id.Principal, leaseID id.LeaseID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.policy.IsOracle(caller) {
		s.metrics.IncrementManualEvaluation("rejected")
		s.emit(ctx, audit.Event{
			LeaseID:   leaseID,
			Principal: caller,
			Action:    string(audit.EventOracleRejection),
			Decision:  "rejected",
		})
		return false, dErrors.New(dErrors.CodeOracleNotVerified, "caller is not the oracle")
	}
	if !leaseID.Valid() {
		return false, dErrors.Newf(dErrors.CodeInvalidLeaseID, "lease id %d must be positive", leaseID)
	}

	rules, err := s.resolveRules(ctx, leaseID)
	if err != nil {
		return false, err
	}
	history, err := s.payments.History(ctx, leaseID)
	if err != nil {
		return false, err
	}

	renewed := false
	if renewal.MeetsThreshold(history, rules) {
		if _, err := s.checkAndRenew(ctx, leaseID); err == nil {
			renewed = true
		}
	}

	verdict := "not_renewed"
	if renewed {
		verdict = "renewed"
	}
	s.metrics.IncrementManualEvaluation(verdict)
	s.emit(ctx, audit.Event{
		LeaseID:   leaseID,
		Principal: caller,
		Action:    string(audit.EventManualEvaluation),
		Decision:  verdict,
	})
	return renewed, nil
}

// LeaseRules returns the stored rules for a lease, or nil when none exist.
// The default fallback is deliberately not materialized here; it is an
// evaluation-time construct.
func (s *Service) LeaseRules(ctx context.Context, leaseID id.LeaseID) (*renewal.LeaseRules, error) {
	return s.rules.Get(ctx, leaseID)
}

// RenewalStatus returns the stored renewal state, or nil when the lease has
// never been through a successful renewal.
func (s *Service) RenewalStatus(ctx context.Context, leaseID id.LeaseID) (*renewal.RenewalStatus, error) {
	return s.statuses.Get(ctx, leaseID)
}

// Evaluation returns one audit record, or nil when absent.
func (s *Service) Evaluation(ctx context.Context, leaseID id.LeaseID, evalID id.EvaluationID) (*renewal.Evaluation, error) {
	return s.evals.Get(ctx, leaseID, evalID)
}

// Evaluations lists a lease's audit records ordered by evaluation ID.
func (s *Service) Evaluations(ctx context.Context, leaseID id.LeaseID) ([]renewal.Evaluation, error) {
	return s.evals.ListByLease(ctx, leaseID)
}

// EvaluationCount returns the process-wide evaluation counter.
func (s *Service) EvaluationCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(s.nextEvalID)
}

// resolveRules returns the stored rules or the policy fallback tuple.
func (s *Service) resolveRules(ctx context.Context, leaseID id.LeaseID) (renewal.LeaseRules, error) {
	stored, err := s.rules.Get(ctx, leaseID)
	if err != nil {
		return renewal.LeaseRules{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read lease rules")
	}
	if stored != nil {
		return *stored, nil
	}
	return s.policy.FallbackRules(), nil
}

// resolveStatus returns the stored status or the default active state.
func (s *Service) resolveStatus(ctx context.Context, leaseID id.LeaseID) (renewal.RenewalStatus, error) {
	stored, err := s.statuses.Get(ctx, leaseID)
	if err != nil {
		return renewal.RenewalStatus{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read renewal status")
	}
	if stored != nil {
		return *stored, nil
	}
	return renewal.NewStatus(), nil
}

// emit publishes an audit event; audit problems are logged, never fatal.
func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "audit emit failed",
			"action", event.Action,
			"lease_id", event.LeaseID,
			"error", err,
		)
	}
}
