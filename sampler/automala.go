package sampler

import (
	"math"

	"github.com/pkg/errors"

	"github.com/automala/automala/model"
	"github.com/automala/automala/rand"
)

// Config holds the two tunables of the AutoMALA kernel. It is a plain value
// type; numeric values are not validated (a non-positive EpsilonInit just
// produces garbage downstream).
type Config struct {
	EpsilonInit   float64 // Reference step size the doubling/halving search starts from
	NumUnadjusted int     // Leading iterations during which every proposal is force-accepted
}

// DefaultConfig returns the documented defaults: reference step size 1.0 and
// a single unadjusted iteration.
func DefaultConfig() Config {
	return Config{
		EpsilonInit:   1.0,
		NumUnadjusted: 1,
	}
}

// State is one element of an AutoMALA chain. States are immutable: Step
// builds a fresh one every iteration and never touches its input.
type State struct {
	X          []float64 // Position (the current sample)
	P          []float64 // Momentum, refreshed every step
	LP         float64   // Joint log density of (X, P)
	LogA, LogB float64   // This iteration's acceptance band, log scale, LogA <= LogB
	Epsilon    float64   // Step size used, averaged over the forward/backward searches
	J          int       // Signed doubling(+)/halving(-) count from the reference step size
	Accepted   bool      // Whether this state is a fresh proposal or a repeat of the previous position
	Iteration  int       // 1-based, increments by exactly 1 per step
}

// Position returns the sample this state carries. This is the one accessor a
// host inference framework should use to read the chain; everything else on
// State is sampler bookkeeping.
func (s *State) Position() []float64 {
	return s.X
}

// AutoMALA is a self-tuning MALA transition kernel: every step refreshes the
// momentum, searches for a locally appropriate step size by doubling/halving
// from the reference, proposes one leapfrog step, and accepts only if the
// search re-run from the proposal finds the same doubling count (the
// reversibility check) and the usual Metropolis draw passes.
type AutoMALA struct {
	Config Config
	Target model.Model
	Gen    *rand.Generator
}

// NewAutoMALA creates the kernel. The generator and model must be non-nil;
// Config values are taken as given.
func NewAutoMALA(gen *rand.Generator, m model.Model, cfg Config) (*AutoMALA, error) {
	if gen == nil {
		return nil, errors.New("A random generator is required")
	}
	if m == nil {
		return nil, errors.New("A target model is required")
	}

	s := &AutoMALA{
		Config: cfg,
		Target: m,
		Gen:    gen,
	}
	return s, nil
}

// Init creates the first state of a chain. If initial is nil the position is
// drawn from a standard normal; otherwise it must match the target dimension
// and is copied.
func (s *AutoMALA) Init(initial []float64) (*State, error) {
	d := s.Target.Dimension()

	a, b := SampleThresholds(s.Gen)
	p := s.Gen.NormVector(d)

	var x []float64
	if initial == nil {
		x = s.Gen.NormVector(d)
	} else {
		if len(initial) != d {
			return nil, errors.Errorf("Initial position has len %d but target dimension is %d", len(initial), d)
		}
		x = make([]float64, d)
		copy(x, initial)
	}

	st := &State{
		X:         x,
		P:         p,
		LP:        logJoint(s.Target, x, p),
		LogA:      math.Log(a),
		LogB:      math.Log(b),
		Epsilon:   s.Config.EpsilonInit,
		J:         0,
		Accepted:  true,
		Iteration: 1,
	}
	return st, nil
}

// Step advances the chain by one state. The recorded Epsilon is always the
// mean of the forward and backward step-size selections, accepted or not.
// Rejected steps keep the previous position (with the freshly resampled
// momentum); forced acceptance applies while the previous iteration count is
// below Config.NumUnadjusted.
func (s *AutoMALA) Step(prev *State) (*State, error) {
	if prev == nil {
		return nil, errors.New("Step requires the previous state (use Init to start a chain)")
	}

	d := s.Target.Dimension()

	// Gibbs-style momentum refresh: the previous momentum is discarded
	// entirely and the joint log density recomputed.
	p := s.Gen.NormVector(d)
	lpPrev := logJoint(s.Target, prev.X, p)

	a, b := SampleThresholds(s.Gen)
	logA, logB := math.Log(a), math.Log(b)

	eps, j := SelectStepSize(s.Target, prev.X, p, lpPrev, logA, logB, s.Config.EpsilonInit)
	x, pNew, lp := Leapfrog(s.Target, prev.X, p, eps)

	// Re-run the search from the proposal's side of the move, same band.
	epsBack, jBack := SelectStepSize(s.Target, x, pNew, lp, logA, logB, s.Config.EpsilonInit)

	logAlpha := lp - lpPrev
	accept := prev.Iteration < s.Config.NumUnadjusted ||
		(j == jBack && math.Log(s.Gen.Float64()) < logAlpha)

	st := &State{
		LogA:      logA,
		LogB:      logB,
		Epsilon:   (eps + epsBack) / 2.0,
		J:         j,
		Accepted:  accept,
		Iteration: prev.Iteration + 1,
	}

	if accept {
		st.X = x
		st.P = pNew
		st.LP = lp
	} else {
		st.X = prev.X
		st.P = p
		st.LP = lpPrev
	}

	return st, nil
}
