package experiment

import (
	"context"
	"sync"

	"github.com/san-kum/debrislab/internal/metrics"
	"github.com/san-kum/debrislab/internal/scenario"
)

// Ensemble runs the same scenario across consecutive seeds in parallel.
// Each run gets its own population and its own metric instances from
// the factory, so runs never share mutable state.
type Ensemble struct {
	cfg       Config
	scn       *scenario.Scenario
	numRuns   int
	seedStart int64
	metricsFn func() []metrics.Metric
}

func NewEnsemble(cfg Config, scn *scenario.Scenario, numRuns int, seedStart int64, metricsFn func() []metrics.Metric) *Ensemble {
	return &Ensemble{cfg: cfg, scn: scn, numRuns: numRuns, seedStart: seedStart, metricsFn: metricsFn}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := e.cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			exp := New(cfgCopy)
			if err := exp.Setup(e.scn.Clone(), e.metricsFn()); err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = exp.Run(ctx)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
