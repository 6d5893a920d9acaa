package cmd

import (
	"math"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/automala/automala/model"
	"github.com/automala/automala/rand"
	"github.com/automala/automala/sampler"
)

// statWindow is the sliding window used for the accept-rate and step-size
// readouts. Big enough to smooth the noise, small enough to track changes.
const statWindow = 200

// monitorBatch is how many steps each chain takes between monitor updates.
const monitorBatch = 250

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Adapt a step size and sample from the selected target",
	RunE:  runSample,
}

func runSample(cmd *cobra.Command, args []string) error {
	start := time.Now()

	mod, err := model.New(targetName, targetDim)
	if err != nil {
		return err
	}
	if err := model.Check(mod, make([]float64, mod.Dimension())); err != nil {
		return errors.Wrapf(err, "Target %s failed its startup check", targetName)
	}

	logrus.WithFields(logrus.Fields{
		"target": targetName,
		"dim":    mod.Dimension(),
		"seed":   randomSeed,
	}).Info("Starting sampler")

	gen, err := rand.NewGenerator(randomSeed)
	if err != nil {
		return err
	}

	adapter, err := sampler.NewRoundAdapter(gen, mod, adaptRounds)
	if err != nil {
		return err
	}

	baseCfg := sampler.Config{EpsilonInit: epsilonInit, NumUnadjusted: 1}
	cfg, warm, err := adapter.Adapt(baseCfg, nil)
	if err != nil {
		return errors.Wrap(err, "Step-size adaptation failed")
	}
	logrus.WithFields(logrus.Fields{
		"epsilon": cfg.EpsilonInit,
		"rounds":  adapter.NumRounds,
	}).Info("Step size adapted")

	var mon *monitor
	if monitorAddr != "" {
		mon = &monitor{}
		if err := mon.Start(monitorAddr); err != nil {
			return err
		}
		defer mon.Stop()

		mon.Target.Set(targetName)
		mon.Dimension.Set(int64(mod.Dimension()))
		mon.Seed.Set(randomSeed)
		mon.AdaptRounds.Set(int64(adapter.NumRounds))
		mon.EpsilonInit.Set(cfg.EpsilonInit)
		mon.BurnIn.Set(burnIn)
		mon.ChainCount.Set(int64(chainCount))
	}

	count := chainCount
	if count < 1 {
		count = 1
	}

	// Every chain gets its own generator: nothing is shared across chains.
	chains := make([]*sampler.Chain, count)
	for i := range chains {
		cgen, err := rand.NewGenerator(randomSeed + int64(i+1))
		if err != nil {
			return err
		}
		kern, err := sampler.NewAutoMALA(cgen, mod, cfg)
		if err != nil {
			return err
		}
		ch, err := sampler.NewChain(mod, kern, statWindow, burnIn, warm)
		if err != nil {
			return errors.Wrapf(err, "Could not start chain %d", i)
		}
		chains[i] = ch
	}

	// Advance in batches so the monitor sees progress between waits. The
	// chains only touch their own state while running, so reading them is
	// safe once the group is done.
	remaining := sampleCount
	for remaining > 0 {
		batch := remaining
		if batch > monitorBatch {
			batch = monitorBatch
		}

		var wg sync.WaitGroup
		for _, ch := range chains {
			ch.AdvanceAsync(&wg, batch)
		}
		wg.Wait()
		remaining -= batch

		if mon != nil {
			mon.Update(chains, time.Since(start))
		}
	}

	for i, ch := range chains {
		mean, sd := positionMoments(ch)
		fields := logrus.Fields{
			"chain":       i,
			"samples":     len(ch.History),
			"acceptRate":  ch.AcceptRate(),
			"meanEpsilon": ch.MeanEpsilon(),
			"mean0":       mean,
			"sd0":         sd,
		}
		if early, late, ok := ch.EpsilonHalves(); ok {
			fields["epsilonEarly"] = early
			fields["epsilonLate"] = late
		}
		logrus.WithFields(fields).Info("Chain complete")
	}

	logrus.WithField("runtime", time.Since(start)).Info("Done")
	return nil
}

// positionMoments reports mean and standard deviation of the first
// coordinate over a chain's history - a quick sanity readout for the
// built-in targets, whose true moments are known.
func positionMoments(ch *sampler.Chain) (mean float64, sd float64) {
	n := len(ch.History)
	if n < 1 {
		return 0.0, 0.0
	}

	var sum float64
	for _, st := range ch.History {
		sum += st.Position()[0]
	}
	mean = sum / float64(n)

	var ss float64
	for _, st := range ch.History {
		d := st.Position()[0] - mean
		ss += d * d
	}
	sd = math.Sqrt(ss / float64(n))

	return mean, sd
}
