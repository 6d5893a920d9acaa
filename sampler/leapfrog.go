package sampler

import (
	"github.com/automala/automala/model"
)

// sqNorm is the squared euclidean norm (identity mass matrix assumed
// throughout).
func sqNorm(v []float64) float64 {
	var ss float64
	for _, vi := range v {
		ss += vi * vi
	}
	return ss
}

// logJoint is the joint log density of (x, p): logdensity(x) - ||p||^2/2.
func logJoint(m model.Model, x []float64, p []float64) float64 {
	return m.LogDensity(x) - sqNorm(p)/2.0
}

// Leapfrog performs one deterministic leapfrog step of Hamiltonian dynamics:
// half-step momentum kick, full position drift, second half kick. The
// returned momentum is NEGATED, so applying Leapfrog again with the same
// epsilon from (xNew, pNew) lands back exactly on (x, p). The returned lp is
// the joint log density of the new point (negation does not change the
// momentum norm). Pure: inputs are not modified.
func Leapfrog(m model.Model, x []float64, p []float64, epsilon float64) (xNew []float64, pNew []float64, lp float64) {
	_, grad := m.LogDensityGradient(x)

	pNew = make([]float64, len(p))
	xNew = make([]float64, len(x))

	for i := range p {
		pNew[i] = p[i] + epsilon/2.0*grad[i]
	}
	for i := range x {
		xNew[i] = x[i] + epsilon*pNew[i]
	}

	lpPos, grad := m.LogDensityGradient(xNew)
	for i := range pNew {
		pNew[i] += epsilon / 2.0 * grad[i]
	}

	lp = lpPos - sqNorm(pNew)/2.0

	for i := range pNew {
		pNew[i] = -pNew[i]
	}

	return xNew, pNew, lp
}
