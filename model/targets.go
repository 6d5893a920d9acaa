package model

import (
	"math"

	"github.com/pkg/errors"
)

// Normal is an isotropic standard normal target of any dimension, the
// simplest possible smoke-test density: lp(x) = -||x||^2 / 2 (unnormalized).
type Normal struct {
	Dim int
}

// NewNormal creates a standard normal target. Dimension 0 defaults to 1.
func NewNormal(dim int) (*Normal, error) {
	if dim == 0 {
		dim = 1
	}
	if dim < 1 {
		return nil, errors.Errorf("Invalid dimension %d for normal target", dim)
	}
	return &Normal{Dim: dim}, nil
}

// Dimension implements Model.
func (n *Normal) Dimension() int {
	return n.Dim
}

// LogDensity implements Model.
func (n *Normal) LogDensity(x []float64) float64 {
	checkDim(n, x)
	var ss float64
	for _, xi := range x {
		ss += xi * xi
	}
	return -ss / 2.0
}

// LogDensityGradient implements Model.
func (n *Normal) LogDensityGradient(x []float64) (float64, []float64) {
	checkDim(n, x)
	grad := make([]float64, len(x))
	var ss float64
	for i, xi := range x {
		ss += xi * xi
		grad[i] = -xi
	}
	return -ss / 2.0, grad
}

// Banana is the classic 2-D twisted normal benchmark:
// lp(x) = -x0^2/200 - (x1 + B*x0^2 - 100B)^2 / 2. Larger B bends the ridge
// harder, which stresses the per-step step-size selection.
type Banana struct {
	B float64
}

// NewBanana creates a banana target with the given curvature.
func NewBanana(b float64) (*Banana, error) {
	return &Banana{B: b}, nil
}

// Dimension implements Model.
func (bn *Banana) Dimension() int {
	return 2
}

// LogDensity implements Model.
func (bn *Banana) LogDensity(x []float64) float64 {
	checkDim(bn, x)
	twist := x[1] + bn.B*x[0]*x[0] - 100.0*bn.B
	return -x[0]*x[0]/200.0 - twist*twist/2.0
}

// LogDensityGradient implements Model.
func (bn *Banana) LogDensityGradient(x []float64) (float64, []float64) {
	checkDim(bn, x)
	twist := x[1] + bn.B*x[0]*x[0] - 100.0*bn.B
	lp := -x[0]*x[0]/200.0 - twist*twist/2.0
	grad := []float64{
		-x[0]/100.0 - twist*2.0*bn.B*x[0],
		-twist,
	}
	return lp, grad
}

// Funnel is Neal's funnel: x0 ~ N(0,9) and x1..x{d-1} ~ N(0, exp(x0)).
// The local scale varies over orders of magnitude along x0, which is exactly
// the situation a self-tuning step size is meant to handle.
type Funnel struct {
	Dim int
}

// NewFunnel creates a funnel target. Dimension 0 defaults to 2.
func NewFunnel(dim int) (*Funnel, error) {
	if dim == 0 {
		dim = 2
	}
	if dim < 2 {
		return nil, errors.Errorf("Funnel target needs dimension >= 2 (got %d)", dim)
	}
	return &Funnel{Dim: dim}, nil
}

// Dimension implements Model.
func (f *Funnel) Dimension() int {
	return f.Dim
}

// LogDensity implements Model.
func (f *Funnel) LogDensity(x []float64) float64 {
	checkDim(f, x)
	v := x[0]
	var ss float64
	for _, xi := range x[1:] {
		ss += xi * xi
	}
	return -v*v/18.0 - float64(f.Dim-1)*v/2.0 - math.Exp(-v)*ss/2.0
}

// LogDensityGradient implements Model.
func (f *Funnel) LogDensityGradient(x []float64) (float64, []float64) {
	checkDim(f, x)
	v := x[0]
	ev := math.Exp(-v)

	var ss float64
	grad := make([]float64, len(x))
	for i, xi := range x[1:] {
		ss += xi * xi
		grad[i+1] = -xi * ev
	}

	lp := -v*v/18.0 - float64(f.Dim-1)*v/2.0 - ev*ss/2.0
	grad[0] = -v/9.0 - float64(f.Dim-1)/2.0 + ev*ss/2.0

	return lp, grad
}
