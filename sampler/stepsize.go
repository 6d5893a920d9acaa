package sampler

import (
	"github.com/automala/automala/model"
	"github.com/automala/automala/rand"
)

// SampleThresholds draws the two uniform thresholds that define one
// iteration's acceptance band on the log-density-ratio scale. Returns
// (min, max), so a <= b always; both strictly inside (0, 1). The same pair
// must be shared by the forward and backward step-size searches of one
// step - that sharing is what makes the search reversible.
func SampleThresholds(gen *rand.Generator) (a float64, b float64) {
	a = gen.Float64()
	for a == 0.0 {
		a = gen.Float64()
	}
	b = gen.Float64()
	for b == 0.0 {
		b = gen.Float64()
	}

	if a > b {
		a, b = b, a
	}
	return a, b
}

// SelectStepSize finds a step size epsilonInit * 2^j whose leapfrog
// log-density ratio from (x, p) relates to the band [logA, logB) as follows:
// if the ratio at epsilonInit is already in the band, epsilonInit itself is
// returned with j = 0. Otherwise the step size is doubled (ratio >= logB) or
// halved (ratio < logA) until the ratio first crosses the triggering bound,
// and the step size one doubling/halving short of that crossing is returned.
//
// There is no iteration cap: a pathological target can keep the ratio on one
// side of the band forever and this loop will not terminate. Callers are
// expected to hand in an everywhere-smooth, finite log density.
func SelectStepSize(m model.Model, x []float64, p []float64, lp float64, logA float64, logB float64, epsilonInit float64) (epsilon float64, j int) {
	epsilon = epsilonInit
	_, _, lpNew := Leapfrog(m, x, p, epsilon)
	ratio := lpNew - lp

	delta := 0
	if ratio >= logB {
		delta = 1
	} else if ratio < logA {
		delta = -1
	}
	if delta == 0 {
		return epsilon, 0
	}

	for {
		if delta > 0 {
			epsilon *= 2.0
		} else {
			epsilon /= 2.0
		}
		j += delta

		_, _, lpNew = Leapfrog(m, x, p, epsilon)
		ratio = lpNew - lp

		// The boundary-crossing step size is discarded: back off one
		// doubling/halving and return the previous one.
		if delta > 0 && ratio < logB {
			return epsilon / 2.0, j - 1
		}
		if delta < 0 && ratio >= logA {
			return epsilon * 2.0, j + 1
		}
	}
}
