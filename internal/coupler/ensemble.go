package coupler

import (
	"context"
	"sync"
)

// Ensemble runs independent coupled realizations in parallel, one driver per
// seed. Each factory call must build a fresh set of initialized handles.
type Ensemble struct {
	factory   func(seed int64) (*Driver, int, error)
	numRuns   int
	seedStart int64
}

func NewEnsemble(factory func(seed int64) (*Driver, int, error), numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			driver, steps, err := e.factory(e.seedStart + int64(idx))
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = driver.Run(ctx, steps)
			if errs[idx] == nil {
				errs[idx] = driver.Finalize()
			}
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
