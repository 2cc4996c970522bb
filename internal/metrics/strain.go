// Package metrics provides scalar run metrics computed from cloth
// snapshots: edge strain, anchor stretch, and mechanical energy.
package metrics

import (
	"github.com/nnkgw/long-range-attachments/internal/cloth"
)

// EdgeStrain tracks the worst relative deviation of any distance
// constraint from its rest length, peak over the run.
type EdgeStrain struct {
	name string
	max  float64
}

func NewEdgeStrain() *EdgeStrain {
	return &EdgeStrain{name: "edge_strain"}
}

func (m *EdgeStrain) Name() string { return m.name }

func (m *EdgeStrain) Observe(s cloth.Snapshot, t float64) {
	for i, e := range s.Edges {
		rest := s.EdgeRest[i]
		if rest == 0 {
			continue
		}
		d := s.Positions[e[0]].Sub(s.Positions[e[1]]).Length()
		strain := d/rest - 1
		if strain < 0 {
			strain = -strain
		}
		if strain > m.max {
			m.max = strain
		}
	}
}

func (m *EdgeStrain) Value() float64 { return m.max }
func (m *EdgeStrain) Reset()         { m.max = 0 }

// AnchorStretch tracks the worst attachment distance as a fraction of its
// limit, peak over the run. With LRA enabled this never exceeds the slack
// factor (up to floating-point tolerance).
type AnchorStretch struct {
	name string
	max  float64
}

func NewAnchorStretch() *AnchorStretch {
	return &AnchorStretch{name: "anchor_stretch"}
}

func (m *AnchorStretch) Name() string { return m.name }

func (m *AnchorStretch) Observe(s cloth.Snapshot, t float64) {
	for i, a := range s.Attached {
		maxDist := s.AttachMax[i]
		if maxDist == 0 {
			continue
		}
		d := s.Positions[a[0]].Sub(s.Positions[a[1]]).Length()
		if ratio := d / maxDist; ratio > m.max {
			m.max = ratio
		}
	}
}

func (m *AnchorStretch) Value() float64 { return m.max }
func (m *AnchorStretch) Reset()         { m.max = 0 }
