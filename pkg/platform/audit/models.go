package audit

import (
	"time"

	id "relet/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose. This
// enables different retention policies and routing per category.
type EventCategory string

const (
	// CategoryCompliance covers events with contractual significance:
	// renewal outcomes and the evaluation decisions behind them.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to monitoring the oracle gate:
	// rotations, rejected administrative calls.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity useful for debugging.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	LeaseID   id.LeaseID
	// Principal is the caller the action is attributed to, when known.
	Principal id.Principal
	Action    string
	// Decision is the outcome ("renewed", "denied", "updated").
	Decision string
	// Reason carries the denial code name when a renewal is refused.
	Reason    string
	RequestID string
}

type AuditEvent string

const (
	// Renewal events
	EventRenewalSucceeded AuditEvent = "renewal_succeeded"
	EventRenewalDenied    AuditEvent = "renewal_denied"
	EventManualEvaluation AuditEvent = "manual_evaluation"

	// Rule events
	EventRulesUpdated AuditEvent = "rules_updated"

	// Policy events
	EventOracleRotated   AuditEvent = "oracle_rotated"
	EventPolicyUpdated   AuditEvent = "policy_updated"
	EventOracleRejection AuditEvent = "oracle_rejected"
)

// eventCategories maps each audit event to its category.
var eventCategories = map[AuditEvent]EventCategory{
	// Compliance events - renewal decisions feed the contractual trail.
	EventRenewalSucceeded: CategoryCompliance,
	EventRenewalDenied:    CategoryCompliance,
	EventManualEvaluation: CategoryCompliance,

	// Security events - administrative surface.
	EventOracleRotated:   CategorySecurity,
	EventOracleRejection: CategorySecurity,

	// Operations events - routine configuration activity.
	EventRulesUpdated:  CategoryOperations,
	EventPolicyUpdated: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
