package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is the flat numeric error taxonomy shared with callers of the renewal
// engine. Callers branch on the code, so the set and the condition that
// produces each member are part of the public contract.
type Code int

const (
	CodeNotAuthorized       Code = 100
	CodeInvalidLeaseID      Code = 101
	CodeNoPaymentHistory    Code = 102
	CodeThresholdFailed     Code = 103
	CodeInvalidRules        Code = 104
	CodeRenewalInProgress   Code = 105
	CodePeriodMismatch      Code = 106
	CodeCalculationOverflow Code = 107
	CodeOracleNotVerified   Code = 108
	CodeGracePeriodExceeded Code = 109
	CodeMinPaymentsNotMet   Code = 110
	CodeInvalidThreshold    Code = 111
	CodeInvalidPeriod       Code = 112
	CodeLeaseNotFound       Code = 113
	CodeUpdateFailed        Code = 114

	// CodeInternal covers infrastructure failures (storage I/O, malformed
	// upstream responses). It sits outside the caller-facing taxonomy above.
	CodeInternal Code = 500
)

var codeNames = map[Code]string{
	CodeNotAuthorized:       "not_authorized",
	CodeInvalidLeaseID:      "invalid_lease_id",
	CodeNoPaymentHistory:    "no_payment_history",
	CodeThresholdFailed:     "threshold_failed",
	CodeInvalidRules:        "invalid_rules",
	CodeRenewalInProgress:   "renewal_in_progress",
	CodePeriodMismatch:      "period_mismatch",
	CodeCalculationOverflow: "calculation_overflow",
	CodeOracleNotVerified:   "oracle_not_verified",
	CodeGracePeriodExceeded: "grace_period_exceeded",
	CodeMinPaymentsNotMet:   "min_payments_not_met",
	CodeInvalidThreshold:    "invalid_threshold",
	CodeInvalidPeriod:       "invalid_period",
	CodeLeaseNotFound:       "lease_not_found",
	CodeUpdateFailed:        "update_failed",
	CodeInternal:            "internal",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code_%d", int(c))
}

// Error carries a taxonomy code alongside a human-readable message and an
// optional wrapped cause.
type Error struct {
	code Code
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.code, e.msg)
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the taxonomy code attached to this error.
func (e *Error) Code() Code {
	return e.code
}

// New builds a domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{code: code, msg: msg}
}

// Newf builds a domain error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error. If err already
// carries a domain code the original remains reachable via errors.As.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{code: code, msg: msg, err: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.code == code
	}
	return false
}

// CodeOf extracts the outermost domain code from err. Non-domain errors
// report CodeInternal so transport layers never leak raw failures.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return CodeInternal
}

// HTTPStatus maps a taxonomy code to the HTTP status used by the transport
// layer. The numeric code still travels in the response body; the status is
// advisory for generic clients.
func HTTPStatus(code Code) int {
	switch code {
	case CodeNotAuthorized, CodeOracleNotVerified:
		return http.StatusForbidden
	case CodeInvalidLeaseID, CodeInvalidRules, CodeInvalidThreshold,
		CodeInvalidPeriod, CodeMinPaymentsNotMet, CodePeriodMismatch:
		return http.StatusBadRequest
	case CodeNoPaymentHistory, CodeLeaseNotFound:
		return http.StatusNotFound
	case CodeRenewalInProgress, CodeGracePeriodExceeded:
		return http.StatusConflict
	case CodeThresholdFailed:
		return http.StatusUnprocessableEntity
	case CodeUpdateFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
