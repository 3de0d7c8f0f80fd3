package randengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameSeedSameSequence(t *testing.T) {
	a, b := New(42), New(42)
	for range 100 {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestDiscreteDistribution(t *testing.T) {
	e := New(1)
	counts := make([]int, 3)
	for range 3000 {
		i := e.DiscreteDistribution([]float64{1, 0, 2})
		assert.GreaterOrEqual(t, i, int32(0))
		assert.Less(t, i, int32(3))
		counts[i]++
	}
	assert.Zero(t, counts[1])
	assert.Greater(t, counts[2], counts[0])
}

func TestPTrue(t *testing.T) {
	e := New(7)
	for range 100 {
		assert.False(t, e.PTrue(0))
		assert.True(t, e.PTrue(1))
	}
}
