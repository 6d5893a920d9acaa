package sampler

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/automala/automala/model"
	"github.com/automala/automala/rand"
)

func testChain(t *testing.T, seed int64, window int, burnIn int64) *Chain {
	m, err := model.NewNormal(1)
	if err != nil {
		t.Fatalf("target setup failed: %v", err)
	}
	gen, err := rand.NewGenerator(seed)
	if err != nil {
		t.Fatalf("generator setup failed: %v", err)
	}
	kern, err := NewAutoMALA(gen, m, Config{EpsilonInit: 0.5, NumUnadjusted: 0})
	if err != nil {
		t.Fatalf("kernel setup failed: %v", err)
	}

	ch, err := NewChain(m, kern, window, burnIn, []float64{0.0})
	if err != nil {
		t.Fatalf("chain setup failed: %v", err)
	}
	return ch
}

func TestChainValidation(t *testing.T) {
	assert := assert.New(t)

	ch, err := NewChain(nil, nil, 10, 0, nil)
	assert.Nil(ch)
	assert.Error(err)
}

func TestChainNoBurnIn(t *testing.T) {
	assert := assert.New(t)

	ch := testChain(t, 42, 10, 0)

	// Initial state is recorded
	assert.Len(ch.History, 1)
	assert.Equal(1, ch.History[0].Iteration)
	assert.Equal(int64(1), ch.TotalRecorded)

	assert.NoError(ch.Advance(10))
	assert.Len(ch.History, 11)
	for i, st := range ch.History {
		assert.Equal(i+1, st.Iteration)
	}

	rate := ch.AcceptRate()
	assert.True(rate >= 0.0 && rate <= 1.0)
	assert.True(ch.MeanEpsilon() > 0.0)
}

func TestChainBurnIn(t *testing.T) {
	assert := assert.New(t)

	ch := testChain(t, 42, 10, 5)

	// Burn-in prefix is discarded: nothing recorded yet, but the chain has
	// advanced (init state plus 5 steps)
	assert.Len(ch.History, 0)
	assert.Equal(6, ch.Last.Iteration)

	assert.NoError(ch.Advance(4))
	assert.Len(ch.History, 4)
	assert.Equal(7, ch.History[0].Iteration)
	assert.Equal(10, ch.History[3].Iteration)
}

func TestChainWindowStats(t *testing.T) {
	assert := assert.New(t)

	ch := testChain(t, 7, 4, 0)

	_, _, ok := ch.EpsilonHalves()
	assert.False(ok)

	assert.NoError(ch.Advance(20))
	early, late, ok := ch.EpsilonHalves()
	assert.True(ok)
	assert.True(early > 0.0)
	assert.True(late > 0.0)
}

func TestChainsAdvanceConcurrently(t *testing.T) {
	assert := assert.New(t)

	chains := []*Chain{
		testChain(t, 1, 10, 0),
		testChain(t, 2, 10, 0),
		testChain(t, 3, 10, 0),
	}

	var wg sync.WaitGroup
	for _, ch := range chains {
		ch.AdvanceAsync(&wg, 50)
	}
	wg.Wait()

	for _, ch := range chains {
		assert.Len(ch.History, 51)
		assert.Equal(51, ch.Last.Iteration)
	}
}
