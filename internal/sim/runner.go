// Package sim drives a cloth simulation over many ticks, sampling metrics
// and feeding observers between ticks. The runner is the sole mutator of the
// cloth; observers and metrics only ever see snapshots, and cancellation is
// checked strictly between ticks so a tick always runs to completion.
package sim

import (
	"context"
	"fmt"

	"github.com/nnkgw/long-range-attachments/internal/cloth"
)

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(s cloth.Snapshot, t float64)
	Value() float64
	Reset()
}

// Observer is notified after each sampled tick.
type Observer interface {
	OnTick(s cloth.Snapshot, t float64)
}

// Config controls a headless run.
type Config struct {
	Ticks       int
	SampleEvery int // observe metrics every N ticks; 0 means every tick
}

// Result holds the sampled time series of every metric plus its final value.
type Result struct {
	Times    []float64
	Series   map[string][]float64
	Metrics  map[string]float64
	TicksRun int
}

// Runner owns a cloth and its step parameters.
type Runner struct {
	cloth     *cloth.Cloth
	params    cloth.StepParams
	metrics   []Metric
	observers []Observer
	buf       cloth.Snapshot
	t         float64
}

func New(c *cloth.Cloth, params cloth.StepParams) *Runner {
	params.Clamp()
	return &Runner{cloth: c, params: params}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Params returns the current step parameters.
func (r *Runner) Params() cloth.StepParams { return r.params }

// SetParams swaps the step parameters, clamped to valid ranges. Takes
// effect on the next tick.
func (r *Runner) SetParams(p cloth.StepParams) {
	p.Clamp()
	r.params = p
}

// Cloth exposes the underlying cloth for snapshotting.
func (r *Runner) Cloth() *cloth.Cloth { return r.cloth }

// Time returns the accumulated simulation time.
func (r *Runner) Time() float64 { return r.t }

// Tick advances the simulation by one tick and returns the new time.
func (r *Runner) Tick() float64 {
	r.cloth.Step(r.params)
	r.t += r.params.Dt
	return r.t
}

// Reset rebuilds the cloth and rewinds the clock. Only valid between ticks.
func (r *Runner) Reset() {
	r.cloth.Reset()
	r.t = 0
	for _, m := range r.metrics {
		m.Reset()
	}
}

// Run advances cfg.Ticks ticks, observing metrics on the sampling stride.
// Cancellation is honored between ticks; the partial result is returned
// with the context error.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	stride := cfg.SampleEvery
	if stride == 0 {
		stride = 1
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	result := &Result{
		Series:  make(map[string][]float64),
		Metrics: make(map[string]float64),
	}

	for tick := 0; tick < cfg.Ticks; tick++ {
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, ctx.Err()
		default:
		}

		t := r.Tick()
		result.TicksRun++

		if tick%stride != 0 {
			continue
		}
		r.cloth.SnapshotInto(&r.buf)
		result.Times = append(result.Times, t)
		for _, m := range r.metrics {
			m.Observe(r.buf, t)
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
		}
		for _, o := range r.observers {
			o.OnTick(r.buf, t)
		}
	}

	r.finish(result)
	return result, nil
}

func (r *Runner) finish(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (cfg Config) validate() error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("sample stride must be non-negative, got %d", cfg.SampleEvery)
	}
	return nil
}
