package handler

import (
	"relet/internal/renewal"
)

type ackResponse struct {
	Status string `json:"status"`
}

// RulesResponse is the HTTP response for GET /leases/{leaseID}/rules.
type RulesResponse struct {
	Threshold         int   `json:"threshold"`
	Period            int64 `json:"period"`
	DurationExtension int64 `json:"duration_extension"`
	MinPayments       int   `json:"min_payments"`
	GraceDays         int64 `json:"grace_days"`
}

// FromRules converts a domain rule record to an HTTP response.
func FromRules(rules *renewal.LeaseRules) *RulesResponse {
	return &RulesResponse{
		Threshold:         rules.Threshold,
		Period:            rules.Period,
		DurationExtension: rules.DurationExtension,
		MinPayments:       rules.MinPayments,
		GraceDays:         rules.GraceDays,
	}
}

// RenewalResponse is the HTTP response for POST /leases/{leaseID}/renewal.
type RenewalResponse struct {
	NewTerm int64 `json:"new_term"`
}

// ManualEvaluationResponse is the HTTP response for POST /leases/{leaseID}/evaluation.
type ManualEvaluationResponse struct {
	Renewed bool `json:"renewed"`
}

// StatusResponse is the HTTP response for GET /leases/{leaseID}/status.
type StatusResponse struct {
	LastRenewed  int64 `json:"last_renewed"`
	NextEligible int64 `json:"next_eligible"`
	Active       bool  `json:"active"`
	Extensions   int64 `json:"extensions"`
}

// FromStatus converts a domain renewal status to an HTTP response.
func FromStatus(status *renewal.RenewalStatus) *StatusResponse {
	return &StatusResponse{
		LastRenewed:  status.LastRenewed,
		NextEligible: status.NextEligible,
		Active:       status.Active,
		Extensions:   status.Extensions,
	}
}

// EvaluationResponse is one evaluation audit record on the wire.
type EvaluationResponse struct {
	LeaseID      int64 `json:"lease_id"`
	EvaluationID int64 `json:"evaluation_id"`
	Height       int64 `json:"height"`
	MetThreshold bool  `json:"met_threshold"`
	OnTimeCount  int   `json:"on_time_count"`
	TotalCount   int   `json:"total_count"`
	Ratio        int   `json:"ratio"`
}

// FromEvaluation converts a domain evaluation record to an HTTP response.
func FromEvaluation(ev renewal.Evaluation) EvaluationResponse {
	return EvaluationResponse{
		LeaseID:      int64(ev.LeaseID),
		EvaluationID: int64(ev.ID),
		Height:       ev.Height,
		MetThreshold: ev.MetThreshold,
		OnTimeCount:  ev.OnTimeCount,
		TotalCount:   ev.TotalCount,
		Ratio:        ev.Ratio,
	}
}

// EvaluationListResponse is the HTTP response for GET /leases/{leaseID}/evaluations.
type EvaluationListResponse struct {
	Evaluations []EvaluationResponse `json:"evaluations"`
}

// CountResponse is the HTTP response for GET /evaluations/count.
type CountResponse struct {
	Count int64 `json:"count"`
}
