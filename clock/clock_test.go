package clock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/aim-sim-oss/clock"
	"github.com/tsinghua-fib-lab/aim-sim-oss/utils/config"
)

func TestClockTick(t *testing.T) {
	c := clock.New(config.ControlStep{Start: 10, Total: 2, Interval: 0.5})
	assert.Equal(t, int32(10), c.InternalStep)
	assert.InDelta(t, 5.0, c.T, 1e-9)
	assert.False(t, c.Done())

	c.Tick()
	assert.InDelta(t, 5.5, c.T, 1e-9)
	assert.False(t, c.Done())
	c.Tick()
	assert.True(t, c.Done())

	c.Init()
	assert.Equal(t, int32(10), c.InternalStep)
}

func TestClockString(t *testing.T) {
	c := clock.New(config.ControlStep{Start: 3725, Total: 1, Interval: 1})
	assert.Equal(t, "01:02:05", c.String())
}
