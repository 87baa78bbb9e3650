package renewal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "relet/pkg/domain-errors"
)

func newTestPolicy() *Policy {
	return NewPolicy(PolicyDefaults{
		Oracle:           "oracle-1",
		DefaultThreshold: 90,
		DefaultPeriod:    12,
		GracePeriod:      30,
		MaxEvaluations:   500,
	})
}

func TestPolicyOracleGate(t *testing.T) {
	p := newTestPolicy()

	assert.True(t, p.IsOracle("oracle-1"))
	assert.False(t, p.IsOracle("someone-else"))

	t.Run("setters reject non-oracle callers without mutating", func(t *testing.T) {
		err := p.SetDefaultThreshold("someone-else", 80)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeOracleNotVerified))

		err = p.SetDefaultPeriod("someone-else", 6)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeOracleNotVerified))

		err = p.SetGracePeriod("someone-else", 10)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeOracleNotVerified))

		assert.Equal(t, LeaseRules{Threshold: 90, Period: 12, DurationExtension: 12, MinPayments: 6, GraceDays: 30}, p.FallbackRules())
	})

	t.Run("oracle rotation uses the distinct not-authorized code", func(t *testing.T) {
		err := p.SetOracle("someone-else", "usurper")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotAuthorized))
		assert.True(t, p.IsOracle("oracle-1"))
	})

	t.Run("rotated oracle takes over", func(t *testing.T) {
		require.NoError(t, p.SetOracle("oracle-1", "oracle-2"))
		assert.False(t, p.IsOracle("oracle-1"))
		assert.True(t, p.IsOracle("oracle-2"))
		require.NoError(t, p.SetDefaultThreshold("oracle-2", 80))
	})
}

func TestPolicySetterValidation(t *testing.T) {
	p := newTestPolicy()

	t.Run("threshold bounds", func(t *testing.T) {
		for _, bad := range []int{0, -1, 101} {
			err := p.SetDefaultThreshold("oracle-1", bad)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidThreshold))
		}
		require.NoError(t, p.SetDefaultThreshold("oracle-1", 100))
		assert.Equal(t, 100, p.FallbackRules().Threshold)
	})

	t.Run("period must be positive", func(t *testing.T) {
		err := p.SetDefaultPeriod("oracle-1", 0)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidPeriod))

		require.NoError(t, p.SetDefaultPeriod("oracle-1", 24))
		assert.EqualValues(t, 24, p.FallbackRules().Period)
	})

	t.Run("grace ceiling accepts any value", func(t *testing.T) {
		// The ceiling setter performs no range check; only per-lease
		// GraceDays is bounded against it.
		require.NoError(t, p.SetGracePeriod("oracle-1", 0))
		require.NoError(t, p.SetGracePeriod("oracle-1", 100000))
		assert.EqualValues(t, 100000, p.GracePeriod())
	})
}

func TestFallbackRulesTracksLiveDefaults(t *testing.T) {
	p := newTestPolicy()

	before := p.FallbackRules()
	assert.Equal(t, 90, before.Threshold)

	require.NoError(t, p.SetDefaultThreshold("oracle-1", 70))
	after := p.FallbackRules()
	assert.Equal(t, 70, after.Threshold)

	// Fixed fallback fields are untouched by policy changes.
	assert.EqualValues(t, FallbackDurationExtension, after.DurationExtension)
	assert.Equal(t, FallbackMinPayments, after.MinPayments)
}
