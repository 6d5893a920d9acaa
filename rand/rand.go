package rand

import (
	"math"

	"github.com/pkg/errors"
	"github.com/seehuhn/mt19937"
)

// A Generator wraps a Mersenne twister PRNG with a goroutine that populates
// batches of random numbers. A chain owns exactly one Generator: draws are
// consumed from a single goroutine, so a fixed seed gives a fixed sequence.
type Generator struct {
	ch chan int64
}

// NewGenerator starts a new background PRNG based on the given seed
func NewGenerator(seed int64) (*Generator, error) {
	numChan := make(chan int64, 1024)

	go func() {
		r := mt19937.New()
		r.Seed(seed)
		for {
			numChan <- r.Int63()
		}
	}()

	g := &Generator{
		ch: numChan,
	}

	return g, nil
}

// NewGeneratorSlice starts a new background PRNG seeded from a key array (the
// canonical MT19937-64 init_by_array scheme).
func NewGeneratorSlice(seed []uint64) (*Generator, error) {
	if len(seed) < 1 {
		return nil, errors.Errorf("Can not seed a generator from an empty slice")
	}

	numChan := make(chan int64, 1024)

	go func() {
		r := mt19937.New()
		r.SeedFromSlice(seed)
		for {
			numChan <- r.Int63()
		}
	}()

	g := &Generator{
		ch: numChan,
	}

	return g, nil
}

// Int63 provides the same interface as Go's math/rand, but with pre-generation.
func (g *Generator) Int63() int64 {
	return <-g.ch
}

// Int63n is a copy of the current Go code
func (g *Generator) Int63n(n int64) int64 {
	if n <= 0 {
		panic("invalid argument to Int63n")
	}

	if n&(n-1) == 0 { // n is power of two, can mask
		return g.Int63() & (n - 1)
	}

	max := int64((1 << 63) - 1 - (1<<63)%uint64(n))
	v := g.Int63()
	for v > max {
		v = g.Int63()
	}

	return v % n
}

// Float64 uses the commented, simpler implmentation since we don't have the
// same support requirements for users
func (g *Generator) Float64() float64 {
	// See the Go lang comments for Rand Float64 implementation for details
	return float64(g.Int63n(1<<53)) / (1 << 53)
}

// Norm returns a single standard normal draw via Box-Muller. The second
// variate of the pair is discarded: consumption order stays one pair per
// draw, which keeps seeded runs reproducible.
func (g *Generator) Norm() float64 {
	u := g.Float64()
	for u == 0.0 {
		u = g.Float64()
	}
	v := g.Float64()
	return math.Sqrt(-2.0*math.Log(u)) * math.Cos(2.0*math.Pi*v)
}

// NormVector returns n independent standard normal draws. Used for momentum
// refresh and default chain starting positions.
func (g *Generator) NormVector(n int) []float64 {
	vec := make([]float64, n)
	for i := range vec {
		vec[i] = g.Norm()
	}
	return vec
}
