package handler

import (
	"strings"

	"relet/internal/renewal"
	dErrors "relet/pkg/domain-errors"
)

// SetRulesRequest is the HTTP request body for PUT /leases/{leaseID}/rules.
type SetRulesRequest struct {
	Threshold         int   `json:"threshold"`
	Period            int64 `json:"period"`
	DurationExtension int64 `json:"duration_extension"`
	MinPayments       int   `json:"min_payments"`
	GraceDays         int64 `json:"grace_days"`
}

// Validate only checks structure here. Field validation runs in the domain
// against the live grace ceiling, so the error codes and their ordering stay
// identical for every caller.
func (r *SetRulesRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidRules, "request body is required")
	}
	return nil
}

// Rules converts the body to the domain rule record.
func (r *SetRulesRequest) Rules() renewal.LeaseRules {
	return renewal.LeaseRules{
		Threshold:         r.Threshold,
		Period:            r.Period,
		DurationExtension: r.DurationExtension,
		MinPayments:       r.MinPayments,
		GraceDays:         r.GraceDays,
	}
}

// SetOracleRequest is the HTTP request body for PUT /admin/policy/oracle.
type SetOracleRequest struct {
	Oracle string `json:"oracle"`
}

func (r *SetOracleRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidRules, "request body is required")
	}
	r.Oracle = strings.TrimSpace(r.Oracle)
	if r.Oracle == "" {
		return dErrors.New(dErrors.CodeInvalidRules, "oracle is required")
	}
	return nil
}

// SetThresholdRequest is the HTTP request body for PUT /admin/policy/threshold.
type SetThresholdRequest struct {
	Threshold int `json:"threshold"`
}

func (r *SetThresholdRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidRules, "request body is required")
	}
	return nil
}

// SetPeriodRequest is the HTTP request body for PUT /admin/policy/period.
type SetPeriodRequest struct {
	Period int64 `json:"period"`
}

func (r *SetPeriodRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidRules, "request body is required")
	}
	return nil
}

// SetGraceRequest is the HTTP request body for PUT /admin/policy/grace.
type SetGraceRequest struct {
	GraceDays int64 `json:"grace_days"`
}

func (r *SetGraceRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidRules, "request body is required")
	}
	return nil
}
