package cloth

// epsilon below which constrained particles are treated as coincident.
// Corrections are skipped then: the direction is undefined.
const epsilon = 1e-9

// Step advances the simulation by one tick: predict under gravity, relax
// constraints Gauss-Seidel style for p.Iterations passes, then reconcile
// velocities from the positional change. Parameters are clamped first, so
// out-of-range input degrades to the nearest valid value instead of failing.
func (c *Cloth) Step(p StepParams) {
	p.Clamp()

	// Predict: symplectic Euler, previous position snapshotted for the
	// velocity reconciliation below.
	for i := range c.particles {
		pt := &c.particles[i]
		if pt.Pinned {
			continue
		}
		pt.Vel = pt.Vel.Add(p.Gravity.Scale(p.Dt))
		pt.Prev = pt.Pos
		pt.Pos = pt.Pos.Add(pt.Vel.Scale(p.Dt))
	}

	// Project: each pass reads the results of the previous one, so
	// constraint order matters and more iterations converge tighter. Local
	// edges first to keep local shape, then attachments to pull the global
	// length budget back in immediately.
	for iter := 0; iter < p.Iterations; iter++ {
		for _, e := range c.edges {
			c.projectDistance(e)
		}
		if p.LRA {
			for _, a := range c.attachments {
				c.projectAttachment(a, p.Slack)
			}
		}
	}

	// Reconcile: velocity is the finite difference of resolved positions,
	// with a multiplicative drag.
	for i := range c.particles {
		pt := &c.particles[i]
		if pt.Pinned {
			continue
		}
		pt.Vel = pt.Pos.Sub(pt.Prev).Scale(1 / p.Dt).Scale(p.Damping)
	}
}

// projectDistance moves both endpoints toward the rest separation,
// splitting the correction by inverse mass. Coincident endpoints and fully
// pinned pairs are skipped.
func (c *Cloth) projectDistance(e DistanceConstraint) {
	p1 := &c.particles[e.I]
	p2 := &c.particles[e.J]

	delta := p1.Pos.Sub(p2.Pos)
	dist := delta.Length()
	if dist < epsilon {
		return
	}

	wSum := p1.InvMass + p2.InvMass
	if wSum < epsilon {
		return
	}

	corr := delta.Scale((dist - e.Rest) / dist)
	if !p1.Pinned {
		p1.Pos = p1.Pos.Sub(corr.Scale(p1.InvMass / wSum))
	}
	if !p2.Pinned {
		p2.Pos = p2.Pos.Add(corr.Scale(p2.InvMass / wSum))
	}
}

// projectAttachment clamps the particle onto the sphere of radius
// MaxDist*slack around its anchor. Inside the sphere nothing happens; the
// constraint only ever shortens.
func (c *Cloth) projectAttachment(a Attachment, slack float64) {
	p := &c.particles[a.Particle]
	anchor := c.particles[a.Anchor].Pos

	delta := p.Pos.Sub(anchor)
	dist := delta.Length()
	limit := a.MaxDist * slack
	if dist <= limit || dist < epsilon {
		return
	}
	p.Pos = anchor.Add(delta.Scale(limit / dist))
}
