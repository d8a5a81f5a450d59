package sim

import (
	"context"
	"sync"
)

// Ensemble runs one system and controller from many initial states at once.
// Systems built from polynomials are immutable, so the runs share them.
// Metrics and observers are not shared: each run gets a bare simulator.
type Ensemble struct {
	sys        System
	controller Controller
}

func NewEnsemble(sys System, controller Controller) *Ensemble {
	return &Ensemble{sys: sys, controller: controller}
}

func (e *Ensemble) Run(ctx context.Context, x0s []State, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(x0s))
	errs := make([]error, len(x0s))

	var wg sync.WaitGroup
	for i := range x0s {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			s := New(e.sys, e.controller)
			results[idx], errs[idx] = s.Run(ctx, x0s[idx], cfg)
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
