package sampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/automala/automala/model"
	"github.com/automala/automala/rand"
)

func TestSampleThresholds(t *testing.T) {
	assert := assert.New(t)

	gen, err := rand.NewGenerator(42)
	assert.NoError(err)

	for i := 0; i < 5000; i++ {
		a, b := SampleThresholds(gen)
		assert.True(a > 0.0 && a < 1.0, "a out of range: %v", a)
		assert.True(b > 0.0 && b < 1.0, "b out of range: %v", b)
		assert.True(a <= b, "ordering violated: a=%v b=%v", a, b)
	}
}

// ratioAt evaluates the leapfrog log-density ratio the selector steers on.
func ratioAt(m model.Model, x, p []float64, lp, eps float64) float64 {
	_, _, lpNew := Leapfrog(m, x, p, eps)
	return lpNew - lp
}

func TestSelectInBandImmediate(t *testing.T) {
	assert := assert.New(t)

	m, err := model.NewNormal(1)
	assert.NoError(err)

	x := []float64{0.0}
	p := []float64{1.0}
	lp := logJoint(m, x, p)

	// ratio at eps=1 is -0.125, inside [-1, -0.01): no search at all
	eps, j := SelectStepSize(m, x, p, lp, -1.0, -0.01, 1.0)
	assert.Equal(1.0, eps)
	assert.Equal(0, j)
}

func TestSelectDoubling(t *testing.T) {
	assert := assert.New(t)

	m, err := model.NewNormal(1)
	assert.NoError(err)

	x := []float64{0.0}
	p := []float64{1.0}
	lp := logJoint(m, x, p)
	logA, logB := -5.0, -0.01

	// ratio at 0.125 is ~ -3e-5 >= logB, so the step size grows until the
	// ratio first drops below logB (at eps=1), then backs off one doubling.
	eps, j := SelectStepSize(m, x, p, lp, logA, logB, 0.125)
	assert.Equal(2, j)
	assert.Equal(math.Ldexp(0.125, j), eps)
	assert.Equal(0.5, eps)

	// Returned step still satisfies the doubling condition; the discarded
	// one crossed the bound.
	assert.True(ratioAt(m, x, p, lp, eps) >= logB)
	assert.True(ratioAt(m, x, p, lp, eps*2.0) < logB)
}

func TestSelectHalving(t *testing.T) {
	assert := assert.New(t)

	m, err := model.NewNormal(1)
	assert.NoError(err)

	x := []float64{0.0}
	p := []float64{1.0}
	lp := logJoint(m, x, p)
	logA, logB := -0.01, -0.005

	// ratio at 2 is ~ -2 < logA, so the step size shrinks until the ratio
	// first climbs to logA (at eps=0.5), then backs off one halving.
	eps, j := SelectStepSize(m, x, p, lp, logA, logB, 2.0)
	assert.Equal(-1, j)
	assert.Equal(math.Ldexp(2.0, j), eps)
	assert.Equal(1.0, eps)

	assert.True(ratioAt(m, x, p, lp, eps) < logA)
	assert.True(ratioAt(m, x, p, lp, eps/2.0) >= logA)
}

func TestSelectPowerOfTwoExact(t *testing.T) {
	assert := assert.New(t)

	m, err := model.NewNormal(2)
	assert.NoError(err)

	gen, err := rand.NewGenerator(99)
	assert.NoError(err)

	// Whatever the band and start point, the result is exactly
	// epsilonInit * 2^j - doubling and halving are exact float operations.
	for trial := 0; trial < 50; trial++ {
		x := gen.NormVector(2)
		p := gen.NormVector(2)
		lp := logJoint(m, x, p)

		a, b := SampleThresholds(gen)
		eps, j := SelectStepSize(m, x, p, lp, math.Log(a), math.Log(b), 0.7)
		assert.Equal(math.Ldexp(0.7, j), eps)
		assert.True(eps > 0.0)
	}
}
