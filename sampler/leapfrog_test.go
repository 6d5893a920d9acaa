package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/automala/automala/model"
	"github.com/automala/automala/rand"
)

func TestLeapfrogHandComputed(t *testing.T) {
	assert := assert.New(t)

	m, err := model.NewNormal(1)
	assert.NoError(err)

	// From x=0, p=1 with eps=0.5 on the standard normal: grad(0)=0, so the
	// half kick is a no-op, drift lands on 0.5, grad(0.5)=-0.5, and the
	// second half kick gives p=0.875 before negation.
	x, p, lp := Leapfrog(m, []float64{0.0}, []float64{1.0}, 0.5)
	assert.InDelta(0.5, x[0], 1e-12)
	assert.InDelta(-0.875, p[0], 1e-12)
	assert.InDelta(-0.125-0.875*0.875/2.0, lp, 1e-12)
}

func TestLeapfrogPure(t *testing.T) {
	assert := assert.New(t)

	m, err := model.NewNormal(2)
	assert.NoError(err)

	x := []float64{1.0, -2.0}
	p := []float64{0.5, 0.25}
	xNew, pNew, _ := Leapfrog(m, x, p, 0.3)

	// Inputs untouched, outputs are fresh storage
	assert.Equal([]float64{1.0, -2.0}, x)
	assert.Equal([]float64{0.5, 0.25}, p)
	xNew[0] = 99.0
	pNew[0] = 99.0
	assert.Equal(1.0, x[0])
	assert.Equal(0.5, p[0])
}

func TestLeapfrogReversible(t *testing.T) {
	assert := assert.New(t)

	m, err := model.NewNormal(3)
	assert.NoError(err)

	gen, err := rand.NewGenerator(42)
	assert.NoError(err)

	// Applying the step twice from the returned (x', p') must land exactly
	// back on (x, p): the negated momentum makes the map an involution.
	for _, eps := range []float64{0.01, 0.1, 0.5, 1.0, 2.0} {
		for trial := 0; trial < 10; trial++ {
			x := gen.NormVector(3)
			p := gen.NormVector(3)

			x1, p1, _ := Leapfrog(m, x, p, eps)
			x2, p2, _ := Leapfrog(m, x1, p1, eps)

			for i := range x {
				assert.InDelta(x[i], x2[i], 1e-9)
				assert.InDelta(p[i], p2[i], 1e-9)
			}
		}
	}
}

func TestLeapfrogReversibleBanana(t *testing.T) {
	assert := assert.New(t)

	m, err := model.NewBanana(0.1)
	assert.NoError(err)

	gen, err := rand.NewGenerator(7)
	assert.NoError(err)

	for trial := 0; trial < 10; trial++ {
		x := gen.NormVector(2)
		p := gen.NormVector(2)

		x1, p1, _ := Leapfrog(m, x, p, 0.25)
		x2, p2, _ := Leapfrog(m, x1, p1, 0.25)

		for i := range x {
			assert.InDelta(x[i], x2[i], 1e-9)
			assert.InDelta(p[i], p2[i], 1e-9)
		}
	}
}
