package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManualClock(t *testing.T) {
	c := NewManual(100)
	assert.Equal(t, int64(100), c.NowMS())

	c.Advance(250)
	assert.Equal(t, int64(350), c.NowMS())

	c.Set(5)
	assert.Equal(t, int64(5), c.NowMS())
}

func TestMonotonicStartsNearZero(t *testing.T) {
	c := NewMonotonic()
	now := c.NowMS()
	assert.GreaterOrEqual(t, now, int64(0))
	assert.Less(t, now, int64(1000))
}
