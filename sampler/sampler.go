package sampler

// A Sampler produces a chain of states from a target model. Implementations
// own their randomness; states are immutable values and a new one is
// returned per call.
type Sampler interface {
	Init(initial []float64) (*State, error)
	Step(prev *State) (*State, error)
}
