package sampler

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/automala/automala/model"
	"github.com/automala/automala/rand"
)

// DefaultAdaptRounds is the number of geometrically growing rounds run when
// the caller does not choose one.
const DefaultAdaptRounds = 10

// RoundAdapter calibrates the reference step size by running rounds of
// forced-accept chains: round i has length 2^i, the mean step size the round
// emitted seeds round i+1, and the final position carries forward. Each
// round is twice as long as the last, so the noisy early estimates are
// outweighed by the later, better-calibrated ones.
type RoundAdapter struct {
	Gen       *rand.Generator
	Target    model.Model
	NumRounds int

	// RoundEpsilons records the per-round mean step size, one entry per
	// chain run, in order. Populated by Adapt.
	RoundEpsilons []float64
}

// NewRoundAdapter creates an adapter. numRounds < 1 selects the default.
func NewRoundAdapter(gen *rand.Generator, m model.Model, numRounds int) (*RoundAdapter, error) {
	if gen == nil {
		return nil, errors.New("A random generator is required for adaptation")
	}
	if m == nil {
		return nil, errors.New("A target model is required for adaptation")
	}
	if numRounds < 1 {
		numRounds = DefaultAdaptRounds
	}

	r := &RoundAdapter{
		Gen:       gen,
		Target:    m,
		NumRounds: numRounds,
	}
	return r, nil
}

// Adapt runs the rounds starting from cfg.EpsilonInit and the given initial
// position (nil for a random start). It returns a configuration holding the
// calibrated reference step size with NumUnadjusted = 0 (pure
// Metropolis-adjusted mode) and the final position as a warm start.
func (r *RoundAdapter) Adapt(cfg Config, initial []float64) (Config, []float64, error) {
	eps := cfg.EpsilonInit
	x := initial
	r.RoundEpsilons = r.RoundEpsilons[:0]

	for round := 1; round <= r.NumRounds; round++ {
		n := 1 << uint(round)

		// Every step of every round is unadjusted, so the chain explores
		// freely while the step size settles.
		kern, err := NewAutoMALA(r.Gen, r.Target, Config{
			EpsilonInit:   eps,
			NumUnadjusted: n,
		})
		if err != nil {
			return Config{}, nil, err
		}

		ch, err := NewChain(r.Target, kern, n, 0, x)
		if err != nil {
			return Config{}, nil, errors.Wrapf(err, "Adaptation round %d failed to start", round)
		}
		if err := ch.Advance(n - 1); err != nil {
			return Config{}, nil, errors.Wrapf(err, "Adaptation round %d failed", round)
		}

		eps = ch.MeanEpsilon()
		x = ch.Last.Position()
		r.RoundEpsilons = append(r.RoundEpsilons, eps)

		logrus.WithFields(logrus.Fields{
			"round":   round,
			"length":  n,
			"epsilon": eps,
		}).Debug("Adaptation round complete")
	}

	adapted := Config{
		EpsilonInit:   eps,
		NumUnadjusted: 0,
	}
	return adapted, x, nil
}
