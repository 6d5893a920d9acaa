package sampler

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/automala/automala/buffer"
	"github.com/automala/automala/model"
)

// Chain drives a Sampler and owns the resulting state sequence. It performs
// burn-in (a discarded prefix of steps), collects every state emitted after
// that into History, and keeps sliding windows over recent step sizes and
// accept/reject outcomes for progress monitoring. Chains are fully
// independent of one another: each should own its Sampler and that sampler's
// Generator, so several can run in parallel with no shared state.
type Chain struct {
	Target        model.Model
	Sampler       Sampler
	History       []*State
	Last          *State
	TotalRecorded int64

	epsilonWindow *buffer.CircularFloat64
	acceptWindow  *buffer.CircularFloat64
}

// NewChain creates a chain, emits the initial state, and runs (and discards)
// burnIn steps. With burnIn == 0 the initial state is the first entry of
// History.
func NewChain(mod model.Model, samp Sampler, window int, burnIn int64, initial []float64) (*Chain, error) {
	if mod == nil || samp == nil {
		return nil, errors.New("A chain requires a target model and a sampler")
	}
	if window < 2 {
		window = 2
	}

	c := &Chain{
		Target:        mod,
		Sampler:       samp,
		epsilonWindow: buffer.NewCircularFloat64(window),
		acceptWindow:  buffer.NewCircularFloat64(window),
	}

	st, err := samp.Init(initial)
	if err != nil {
		return nil, errors.Wrap(err, "Failure during chain init")
	}
	c.Last = st

	if burnIn == 0 {
		c.record(st)
	}
	for i := int64(0); i < burnIn; i++ {
		if err := c.oneStep(false); err != nil {
			return nil, errors.Wrap(err, "Failure during chain burn in")
		}
	}

	return c, nil
}

// record adds a state to the history and rolling windows.
func (c *Chain) record(st *State) {
	c.History = append(c.History, st)
	c.TotalRecorded++

	c.epsilonWindow.Add(st.Epsilon)
	if st.Accepted {
		c.acceptWindow.Add(1.0)
	} else {
		c.acceptWindow.Add(0.0)
	}
}

// oneStep takes a single step and optionally records the new state.
func (c *Chain) oneStep(keep bool) error {
	st, err := c.Sampler.Step(c.Last)
	if err != nil {
		return errors.Wrap(err, "Error taking sample")
	}
	c.Last = st

	if keep {
		c.record(st)
	}
	return nil
}

// Advance records steps additional states.
func (c *Chain) Advance(steps int) error {
	for i := 0; i < steps; i++ {
		if err := c.oneStep(true); err != nil {
			return err
		}
	}
	return nil
}

// AdvanceAsync runs Advance on its own goroutine. Chains share nothing, so
// callers may advance many of them concurrently and wait on the group.
func (c *Chain) AdvanceAsync(wg *sync.WaitGroup, steps int) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := c.Advance(steps); err != nil {
			panic("Async sample generation failed - cannot continue")
		}
	}()
}

// MeanEpsilon is the arithmetic mean of the step size over the entire
// recorded history. This is the quantity round-based adaptation feeds back
// as the next reference step size.
func (c *Chain) MeanEpsilon() float64 {
	if len(c.History) < 1 {
		return 0.0
	}

	var sum float64
	for _, st := range c.History {
		sum += st.Epsilon
	}
	return sum / float64(len(c.History))
}

// AcceptRate is the fraction of accepted states in the recent window.
func (c *Chain) AcceptRate() float64 {
	return c.acceptWindow.Mean()
}

// EpsilonHalves reports the mean step size over the older and newer halves
// of the recent window, a cheap way to watch the step size settle. Not valid
// until the window has filled.
func (c *Chain) EpsilonHalves() (early float64, late float64, ok bool) {
	return c.epsilonWindow.HalfMeans()
}
