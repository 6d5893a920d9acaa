package model

import (
	"math"

	"github.com/pkg/errors"
)

// Model is the narrow capability interface a sampler needs from a continuous
// target: its dimension and its unnormalized log density, with and without
// the gradient. Evaluators return plain floats; structural misuse (e.g. a
// position of the wrong length) panics and aborts the chain. Callers that
// want an error up front instead should use Check.
type Model interface {
	Dimension() int
	LogDensity(x []float64) float64
	LogDensityGradient(x []float64) (float64, []float64)
}

// Check probes the model at x and returns an error if any problem is found:
// wrong position length, non-finite log density, or a gradient whose length
// or values are unusable. A sampler started on a model that fails Check will
// not behave sensibly.
func Check(m Model, x []float64) error {
	d := m.Dimension()
	if d < 1 {
		return errors.Errorf("Model has invalid dimension %d", d)
	}
	if len(x) != d {
		return errors.Errorf("Probe position has len %d but model dimension is %d", len(x), d)
	}

	lp := m.LogDensity(x)
	if math.IsNaN(lp) || math.IsInf(lp, 0) {
		return errors.Errorf("Log density at probe position is not finite (%v)", lp)
	}

	lpg, grad := m.LogDensityGradient(x)
	if len(grad) != d {
		return errors.Errorf("Gradient has len %d but model dimension is %d", len(grad), d)
	}
	if math.Abs(lpg-lp) > 1e-9 {
		return errors.Errorf("LogDensity (%v) and LogDensityGradient (%v) disagree", lp, lpg)
	}
	for i, g := range grad {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return errors.Errorf("Gradient component %d is not finite (%v)", i, g)
		}
	}

	return nil
}

func checkDim(m Model, x []float64) {
	if len(x) != m.Dimension() {
		panic("model: position/dimension mismatch")
	}
}
