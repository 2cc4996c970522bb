package metrics

import (
	"github.com/nnkgw/long-range-attachments/internal/cloth"
	"github.com/nnkgw/long-range-attachments/internal/sim"
)

// Energy averages the cloth's total mechanical energy over the run:
// kinetic plus gravitational potential of every free particle (unit mass).
// PBD is not energy-conserving, so this mostly shows the damping bleeding
// the system toward rest.
type Energy struct {
	name    string
	gravity float64
	total   float64
	samples int
}

func NewEnergy(gravity float64) *Energy {
	return &Energy{name: "energy", gravity: gravity}
}

func (m *Energy) Name() string { return m.name }

func (m *Energy) Observe(s cloth.Snapshot, t float64) {
	e := 0.0
	for i, p := range s.Positions {
		if s.Pinned[i] {
			continue
		}
		v := s.Velocities[i]
		e += 0.5 * v.Dot(v)
		e += m.gravity * p.Y
	}
	m.total += e
	m.samples++
}

func (m *Energy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *Energy) Reset() {
	m.total = 0
	m.samples = 0
}

// Default returns the standard metric set for a run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewEdgeStrain(),
		NewAnchorStretch(),
		NewEnergy(9.8),
	}
}
