package sim

import (
	"context"
	"sync"

	"github.com/nnkgw/long-range-attachments/internal/cloth"
)

// Variant is one labeled parameter set in a comparison run.
type Variant struct {
	Name   string
	Params cloth.StepParams
}

// Ensemble runs the same grid under several parameter variants. Each
// variant gets its own cloth and runner, so the runs are independent and
// can proceed concurrently; within a run the tick loop stays sequential.
type Ensemble struct {
	grid     cloth.Grid
	variants []Variant
	metrics  func() []Metric
}

// NewEnsemble builds an ensemble. metrics is a factory so every variant
// gets fresh accumulators.
func NewEnsemble(grid cloth.Grid, variants []Variant, metrics func() []Metric) *Ensemble {
	return &Ensemble{grid: grid, variants: variants, metrics: metrics}
}

// Run executes all variants and returns their results keyed by variant name.
func (e *Ensemble) Run(ctx context.Context, cfg Config) (map[string]*Result, error) {
	results := make([]*Result, len(e.variants))
	errs := make([]error, len(e.variants))

	var wg sync.WaitGroup
	for i, v := range e.variants {
		wg.Add(1)
		go func(idx int, v Variant) {
			defer wg.Done()

			r := New(cloth.New(e.grid), v.Params)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					r.AddMetric(m)
				}
			}
			results[idx], errs[idx] = r.Run(ctx, cfg)
		}(i, v)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	byName := make(map[string]*Result, len(e.variants))
	for i, v := range e.variants {
		byName[v.Name] = results[i]
	}
	return byName, nil
}
