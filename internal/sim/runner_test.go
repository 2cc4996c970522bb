package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nnkgw/long-range-attachments/internal/cloth"
	"github.com/nnkgw/long-range-attachments/internal/sim"
)

type countingMetric struct {
	observed int
	last     float64
}

func (m *countingMetric) Name() string { return "count" }
func (m *countingMetric) Observe(s cloth.Snapshot, t float64) {
	m.observed++
	m.last = t
}
func (m *countingMetric) Value() float64 { return float64(m.observed) }
func (m *countingMetric) Reset()         { m.observed = 0 }

type recordingObserver struct {
	snapshots int
	maxY      float64
}

func (o *recordingObserver) OnTick(s cloth.Snapshot, t float64) {
	o.snapshots++
	for _, p := range s.Positions {
		if p.Y > o.maxY {
			o.maxY = p.Y
		}
	}
}

func smallGrid() cloth.Grid {
	return cloth.Grid{Width: 6, Height: 6, Spacing: 0.05}
}

var _ = Describe("Runner", func() {
	var runner *sim.Runner

	BeforeEach(func() {
		runner = sim.New(cloth.New(smallGrid()), cloth.DefaultStepParams())
	})

	It("advances the clock by dt per tick", func() {
		t := runner.Tick()
		Expect(t).To(BeNumerically("~", cloth.DefaultDt, 1e-12))
		runner.Tick()
		Expect(runner.Time()).To(BeNumerically("~", 2*cloth.DefaultDt, 1e-12))
	})

	It("rejects a non-positive tick count", func() {
		_, err := runner.Run(context.Background(), sim.Config{Ticks: 0})
		Expect(err).To(HaveOccurred())
	})

	It("observes every tick by default", func() {
		m := &countingMetric{}
		runner.AddMetric(m)

		result, err := runner.Run(context.Background(), sim.Config{Ticks: 20})
		Expect(err).NotTo(HaveOccurred())
		Expect(m.observed).To(Equal(20))
		Expect(result.Times).To(HaveLen(20))
		Expect(result.Series["count"]).To(HaveLen(20))
		Expect(result.Metrics["count"]).To(Equal(20.0))
	})

	It("honors the sampling stride", func() {
		m := &countingMetric{}
		runner.AddMetric(m)

		result, err := runner.Run(context.Background(), sim.Config{Ticks: 20, SampleEvery: 5})
		Expect(err).NotTo(HaveOccurred())
		Expect(m.observed).To(Equal(4))
		Expect(result.TicksRun).To(Equal(20))
	})

	It("feeds observers read-only snapshots", func() {
		o := &recordingObserver{}
		runner.AddObserver(o)

		_, err := runner.Run(context.Background(), sim.Config{Ticks: 10})
		Expect(err).NotTo(HaveOccurred())
		Expect(o.snapshots).To(Equal(10))
		Expect(o.maxY).To(BeNumerically(">", 0))
	})

	It("stops between ticks when cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := runner.Run(ctx, sim.Config{Ticks: 1000})
		Expect(err).To(MatchError(context.Canceled))
		Expect(result.TicksRun).To(Equal(0))
	})

	It("clamps parameters on the way in", func() {
		p := cloth.StepParams{Dt: -1, Iterations: -3, Slack: 0}
		runner.SetParams(p)
		got := runner.Params()
		Expect(got.Iterations).To(Equal(1))
		Expect(got.Slack).To(Equal(1.0))
		Expect(got.Dt).To(BeNumerically(">", 0))
	})

	It("rewinds time and state on reset", func() {
		runner.Tick()
		runner.Tick()
		runner.Reset()
		Expect(runner.Time()).To(BeZero())

		rest := cloth.New(smallGrid())
		for i := 0; i < rest.NumParticles(); i++ {
			Expect(runner.Cloth().Particle(i).Pos).To(Equal(rest.Particle(i).Pos))
		}
	})
})

var _ = Describe("Ensemble", func() {
	It("runs variants independently and keys results by name", func() {
		on := cloth.DefaultStepParams()
		on.Iterations = 2
		off := on
		off.LRA = false

		e := sim.NewEnsemble(smallGrid(), []sim.Variant{
			{Name: "lra", Params: on},
			{Name: "nolra", Params: off},
		}, func() []sim.Metric { return []sim.Metric{&countingMetric{}} })

		results, err := e.Run(context.Background(), sim.Config{Ticks: 30})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveKey("lra"))
		Expect(results).To(HaveKey("nolra"))
		Expect(results["lra"].TicksRun).To(Equal(30))
		Expect(results["nolra"].Metrics["count"]).To(Equal(30.0))
	})
})
