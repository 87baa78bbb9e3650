package renewal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "relet/pkg/domain-errors"
)

func payments(onTime, late int) []PaymentRecord {
	history := make([]PaymentRecord, 0, onTime+late)
	for i := 0; i < onTime; i++ {
		history = append(history, PaymentRecord{Amount: 100, Timestamp: int64(i), OnTime: true})
	}
	for i := 0; i < late; i++ {
		history = append(history, PaymentRecord{Amount: 100, Timestamp: int64(onTime + i), OnTime: false})
	}
	return history
}

func TestCalculateOnTimeRatio(t *testing.T) {
	cases := []struct {
		name   string
		onTime int
		late   int
		period int64
		want   int
	}{
		{"all on time within period", 10, 0, 10, 100},
		{"half on time", 5, 5, 10, 50},
		{"floor division", 2, 1, 3, 66},
		{"history longer than period caps denominator", 13, 0, 12, 100},
		{"whole-history numerator over capped denominator clamps at 100", 20, 5, 10, 100},
		{"period larger than history uses total", 3, 1, 100, 75},
		{"all late", 0, 4, 4, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CalculateOnTimeRatio(payments(tc.onTime, tc.late), tc.period)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestCalculateOnTimeRatioEmptyHistory(t *testing.T) {
	_, err := CalculateOnTimeRatio(nil, 12)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodePeriodMismatch))
}

func TestCalculateOnTimeRatioIsPure(t *testing.T) {
	history := payments(7, 3)
	first, err := CalculateOnTimeRatio(history, 10)
	require.NoError(t, err)
	second, err := CalculateOnTimeRatio(history, 10)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMeetsThreshold(t *testing.T) {
	rules := LeaseRules{Threshold: 85, Period: 10, DurationExtension: 12, MinPayments: 5, GraceDays: 20}

	t.Run("both conditions met", func(t *testing.T) {
		assert.True(t, MeetsThreshold(payments(9, 1), rules))
	})

	t.Run("ratio met but too few payments", func(t *testing.T) {
		assert.False(t, MeetsThreshold(payments(4, 0), rules))
	})

	t.Run("enough payments but ratio below threshold", func(t *testing.T) {
		assert.False(t, MeetsThreshold(payments(5, 5), rules))
	})

	t.Run("empty history fails closed", func(t *testing.T) {
		assert.False(t, MeetsThreshold(nil, rules))
	})

	t.Run("adding an on-time payment never lowers the verdict", func(t *testing.T) {
		history := payments(8, 1)
		before := MeetsThreshold(history, rules)
		after := MeetsThreshold(append(history, PaymentRecord{OnTime: true}), rules)
		if before {
			assert.True(t, after)
		}
	})
}

func TestLeaseRulesValidate(t *testing.T) {
	const graceCeiling = 30
	valid := LeaseRules{Threshold: 85, Period: 10, DurationExtension: 12, MinPayments: 5, GraceDays: 20}

	require.NoError(t, valid.Validate(graceCeiling))

	cases := []struct {
		name   string
		mutate func(*LeaseRules)
		code   dErrors.Code
	}{
		{"threshold zero", func(r *LeaseRules) { r.Threshold = 0 }, dErrors.CodeInvalidThreshold},
		{"threshold above 100", func(r *LeaseRules) { r.Threshold = 101 }, dErrors.CodeInvalidThreshold},
		{"period zero", func(r *LeaseRules) { r.Period = 0 }, dErrors.CodeInvalidPeriod},
		{"period negative", func(r *LeaseRules) { r.Period = -3 }, dErrors.CodeInvalidPeriod},
		{"min payments zero", func(r *LeaseRules) { r.MinPayments = 0 }, dErrors.CodeMinPaymentsNotMet},
		{"grace days above ceiling", func(r *LeaseRules) { r.GraceDays = graceCeiling + 1 }, dErrors.CodeGracePeriodExceeded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := valid
			tc.mutate(&r)
			err := r.Validate(graceCeiling)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, tc.code), "got %v", err)
		})
	}
}
