package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLeaseID(t *testing.T) {
	t.Run("parses positive decimal IDs", func(t *testing.T) {
		assert.Equal(t, LeaseID(42), ParseLeaseID("42"))
		assert.True(t, ParseLeaseID("42").Valid())
	})

	t.Run("parse failures become the unset sentinel", func(t *testing.T) {
		for _, s := range []string{"", "abc", "1.5", "0x10", " 7"} {
			id := ParseLeaseID(s)
			assert.Equal(t, LeaseID(0), id, s)
			assert.False(t, id.Valid(), s)
		}
	})

	t.Run("zero and negative IDs never validate", func(t *testing.T) {
		assert.False(t, ParseLeaseID("0").Valid())
		assert.False(t, ParseLeaseID("-3").Valid())
	})
}

func TestParseEvaluationID(t *testing.T) {
	assert.Equal(t, EvaluationID(0), ParseEvaluationID("0"))
	assert.Equal(t, EvaluationID(7), ParseEvaluationID("7"))

	// Failures must not alias record 0.
	assert.Equal(t, EvaluationID(-1), ParseEvaluationID("seven"))
	assert.Equal(t, EvaluationID(-1), ParseEvaluationID(""))
}

func TestPrincipal_IsZero(t *testing.T) {
	assert.True(t, Principal("").IsZero())
	assert.False(t, Principal("oracle-1").IsZero())
}
