package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterAdvance(t *testing.T) {
	c := NewCounter(100)
	assert.EqualValues(t, 100, c.Height())

	assert.EqualValues(t, 101, c.Advance(1))
	assert.EqualValues(t, 113, c.Advance(12))
	assert.EqualValues(t, 113, c.Height())
}

func TestCounterIgnoresNonPositiveAdvance(t *testing.T) {
	c := NewCounter(50)
	assert.EqualValues(t, 50, c.Advance(0))
	assert.EqualValues(t, 50, c.Advance(-10))
}
