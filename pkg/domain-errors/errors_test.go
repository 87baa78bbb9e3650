package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeRoundTrip(t *testing.T) {
	err := New(CodeThresholdFailed, "on-time ratio below threshold")
	assert.True(t, HasCode(err, CodeThresholdFailed))
	assert.False(t, HasCode(err, CodeInvalidLeaseID))
	assert.Equal(t, CodeThresholdFailed, CodeOf(err))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "failed to append evaluation")

	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Contains(t, err.Error(), "failed to append evaluation")
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(fmt.Errorf("boom")))
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeNotAuthorized, http.StatusForbidden},
		{CodeOracleNotVerified, http.StatusForbidden},
		{CodeInvalidLeaseID, http.StatusBadRequest},
		{CodeInvalidThreshold, http.StatusBadRequest},
		{CodeNoPaymentHistory, http.StatusNotFound},
		{CodeLeaseNotFound, http.StatusNotFound},
		{CodeRenewalInProgress, http.StatusConflict},
		{CodeGracePeriodExceeded, http.StatusConflict},
		{CodeThresholdFailed, http.StatusUnprocessableEntity},
		{CodeUpdateFailed, http.StatusBadGateway},
		{CodeInternal, http.StatusInternalServerError},
		{CodeCalculationOverflow, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.code.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.code))
		})
	}
}

func TestTaxonomyIsStable(t *testing.T) {
	// Callers branch on the numeric values; they must never drift.
	assert.EqualValues(t, 100, CodeNotAuthorized)
	assert.EqualValues(t, 101, CodeInvalidLeaseID)
	assert.EqualValues(t, 102, CodeNoPaymentHistory)
	assert.EqualValues(t, 103, CodeThresholdFailed)
	assert.EqualValues(t, 104, CodeInvalidRules)
	assert.EqualValues(t, 105, CodeRenewalInProgress)
	assert.EqualValues(t, 106, CodePeriodMismatch)
	assert.EqualValues(t, 107, CodeCalculationOverflow)
	assert.EqualValues(t, 108, CodeOracleNotVerified)
	assert.EqualValues(t, 109, CodeGracePeriodExceeded)
	assert.EqualValues(t, 110, CodeMinPaymentsNotMet)
	assert.EqualValues(t, 111, CodeInvalidThreshold)
	assert.EqualValues(t, 112, CodeInvalidPeriod)
	assert.EqualValues(t, 113, CodeLeaseNotFound)
	assert.EqualValues(t, 114, CodeUpdateFailed)
}
