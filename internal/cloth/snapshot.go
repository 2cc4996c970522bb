package cloth

// Snapshot is a deep copy of the renderable simulation state. Observers and
// metrics work off snapshots so they can never mutate particles mid-tick.
type Snapshot struct {
	Positions  []Vec3
	Velocities []Vec3
	Pinned     []bool
	Anchors    []int

	// Constraint topology and rest parameters, index-aligned.
	Edges     [][2]int
	EdgeRest  []float64
	Attached  [][2]int // particle, anchor
	AttachMax []float64
}

// Snapshot copies the current state for read-only consumption.
func (c *Cloth) Snapshot() Snapshot {
	var s Snapshot
	c.SnapshotInto(&s)
	return s
}

// SnapshotInto fills s, reusing its backing slices when they are large
// enough. Tick loops that sample every frame use this to avoid reallocating
// the whole view each time; the buffer must not be retained past the next
// call.
func (c *Cloth) SnapshotInto(s *Snapshot) {
	s.Positions = resize(s.Positions, len(c.particles))
	s.Velocities = resize(s.Velocities, len(c.particles))
	s.Pinned = resize(s.Pinned, len(c.particles))
	s.Anchors = resize(s.Anchors, len(c.anchors))
	s.Edges = resize(s.Edges, len(c.edges))
	s.EdgeRest = resize(s.EdgeRest, len(c.edges))
	s.Attached = resize(s.Attached, len(c.attachments))
	s.AttachMax = resize(s.AttachMax, len(c.attachments))
	for i, p := range c.particles {
		s.Positions[i] = p.Pos
		s.Velocities[i] = p.Vel
		s.Pinned[i] = p.Pinned
	}
	copy(s.Anchors, c.anchors)
	for i, e := range c.edges {
		s.Edges[i] = [2]int{e.I, e.J}
		s.EdgeRest[i] = e.Rest
	}
	for i, a := range c.attachments {
		s.Attached[i] = [2]int{a.Particle, a.Anchor}
		s.AttachMax[i] = a.MaxDist
	}
}

func resize[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}
