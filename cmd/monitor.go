package cmd

import (
	"expvar"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/automala/automala/sampler"
)

type monitor struct {
	info    *expvar.Map
	stopped chan struct{}
	server  *http.Server

	Target      *expvar.String
	Dimension   *expvar.Int
	Seed        *expvar.Int
	AdaptRounds *expvar.Int
	EpsilonInit *expvar.Float
	BurnIn      *expvar.Int
	ChainCount  *expvar.Int

	RunTime      *expvar.Float
	TotalSamples *expvar.Int
	AcceptRate   *expvar.Float
	MeanEpsilon  *expvar.Float
	EarlyEpsilon *expvar.Float
	LateEpsilon  *expvar.Float
}

// Start begins the monitor
func (m *monitor) Start(addr string) error {
	if m.info != nil {
		return errors.Errorf("BUG: You may only start the process monitor once")
	}

	m.info = expvar.NewMap("automala-progress")
	m.stopped = make(chan struct{})
	m.server = &http.Server{
		Addr: addr,
	}

	// Help the user and redirect to the only thing currently available:
	// the handler from the expvar package
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/debug/vars", http.StatusTemporaryRedirect)
	})

	m.Target = expvar.NewString("Target")
	m.Dimension = expvar.NewInt("Dimension")
	m.Seed = expvar.NewInt("Random-Seed")
	m.AdaptRounds = expvar.NewInt("Adapt-Rounds")
	m.EpsilonInit = expvar.NewFloat("Adapted-Epsilon")
	m.BurnIn = expvar.NewInt("Burn-In")
	m.ChainCount = expvar.NewInt("Chain-Count")

	m.RunTime = expvar.NewFloat("Run-Time")
	m.TotalSamples = expvar.NewInt("Total-Samples")
	m.AcceptRate = expvar.NewFloat("Recent-Accept-Rate")
	m.MeanEpsilon = expvar.NewFloat("Mean-Epsilon")
	m.EarlyEpsilon = expvar.NewFloat("Window-Epsilon-Early")
	m.LateEpsilon = expvar.NewFloat("Window-Epsilon-Late")

	// Actual server that will close the stopped channel on exit
	started := make(chan struct{})
	go func() {
		defer close(m.stopped)
		fmt.Fprintf(os.Stderr, "HTTP now available at %v (see debug/vars/)\n", m.server.Addr)
		close(started)
		m.server.ListenAndServe()
	}()

	<-started
	return nil
}

// Update refreshes the progress vars from the chains. Only call between
// batches, while no chain is advancing.
func (m *monitor) Update(chains []*sampler.Chain, elapsed time.Duration) {
	if m.info == nil {
		return
	}

	var total int64
	var rate, eps float64
	for _, ch := range chains {
		total += ch.TotalRecorded
		rate += ch.AcceptRate()
		eps += ch.MeanEpsilon()
	}

	n := float64(len(chains))
	m.TotalSamples.Set(total)
	m.AcceptRate.Set(rate / n)
	m.MeanEpsilon.Set(eps / n)
	m.RunTime.Set(elapsed.Seconds())

	if early, late, ok := chains[0].EpsilonHalves(); ok {
		m.EarlyEpsilon.Set(early)
		m.LateEpsilon.Set(late)
	}
}

func (m *monitor) Stop() {
	if m.info == nil {
		return
	}

	m.server.Close()

	select {
	case <-m.stopped:
		fmt.Fprintf(os.Stderr, "HTTP Info Stopped\n")
	case <-time.After(2 * time.Second):
		fmt.Fprintf(os.Stderr, "HTTP would NOT stop: just continuing on\n")
	}
}
