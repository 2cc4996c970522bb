// Package cloth implements position-based dynamics for a hanging cloth,
// augmented with long range attachment (LRA) constraints after Kim et al.,
// "Long Range Attachments - A Method to Simulate Inextensible Clothing in
// Computer Games" (SCA 2012).
//
// The cloth is a rectangular grid of point masses connected by distance
// constraints along grid edges. Each free particle additionally carries one
// attachment constraint limiting how far it may drift from its nearest
// pinned particle, which approximates global inextensibility at low solver
// iteration counts.
package cloth

// Particle is a single point mass. InvMass 0 marks an immovable particle;
// Pinned is true exactly for those, and their positions never change after
// build.
type Particle struct {
	Pos     Vec3
	Prev    Vec3
	Vel     Vec3
	InvMass float64
	Pinned  bool
}

// DistanceConstraint keeps two grid-adjacent particles at their rest
// separation. It is bilateral: it resists stretching and compression alike.
type DistanceConstraint struct {
	I, J int
	Rest float64
}

// Attachment limits a free particle to a maximum distance from a pinned
// anchor particle. MaxDist is the rest-configuration distance between the
// two; the constraint is unilateral and never pulls the particle inward.
type Attachment struct {
	Particle int
	Anchor   int
	MaxDist  float64
}

// PinFunc decides whether the particle at grid coordinate (x, y) is pinned.
type PinFunc func(x, y int) bool

// PinTopCorners pins the two top corners of the grid, the classic hanging
// cloth setup.
func PinTopCorners(width int) PinFunc {
	return func(x, y int) bool {
		return y == 0 && (x == 0 || x == width-1)
	}
}

// PinTopRow pins the entire top row.
func PinTopRow() PinFunc {
	return func(x, y int) bool { return y == 0 }
}

// PinOrigin pins only the (0, 0) corner.
func PinOrigin() PinFunc {
	return func(x, y int) bool { return x == 0 && y == 0 }
}

// Grid describes the rest configuration a Cloth is built from. Width and
// Height must be positive; that is a precondition, not a checked error.
type Grid struct {
	Width   int
	Height  int
	Spacing float64
	Pin     PinFunc // nil means top two corners
}

// Cloth owns the particle store and both constraint sets. All of it is
// replaced atomically by Reset; during simulation only particle positions,
// previous positions, and velocities mutate.
type Cloth struct {
	grid        Grid
	particles   []Particle
	edges       []DistanceConstraint
	attachments []Attachment
	anchors     []int
}

// New builds a cloth from the given grid. The rest layout is a flat
// vertical plane centered on x, row 0 at the top, row-major particle order.
func New(g Grid) *Cloth {
	c := &Cloth{grid: g}
	c.Reset()
	return c
}

// Index maps a grid coordinate to its particle index.
func (c *Cloth) Index(x, y int) int { return y*c.grid.Width + x }

// Reset rebuilds particles, constraints, and the anchor list from the rest
// configuration. Safe only between ticks.
func (c *Cloth) Reset() {
	w, h, s := c.grid.Width, c.grid.Height, c.grid.Spacing
	pin := c.grid.Pin
	if pin == nil {
		pin = PinTopCorners(w)
	}

	c.particles = make([]Particle, w*h)
	c.edges = c.edges[:0]
	c.attachments = c.attachments[:0]
	c.anchors = c.anchors[:0]

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			id := c.Index(x, y)
			pos := Vec3{
				X: (float64(x) - float64(w-1)*0.5) * s,
				Y: float64(h-1-y) * s,
			}
			p := Particle{Pos: pos, Prev: pos, InvMass: 1}
			if pin(x, y) {
				p.InvMass = 0
				p.Pinned = true
				c.anchors = append(c.anchors, id)
			}
			c.particles[id] = p
		}
	}

	// Structural edges: horizontal and vertical neighbors, no diagonals.
	// Rest lengths are measured, not assumed, so non-uniform layouts would
	// still get exact rest state.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x+1 < w {
				c.addEdge(c.Index(x, y), c.Index(x+1, y))
			}
			if y+1 < h {
				c.addEdge(c.Index(x, y), c.Index(x, y+1))
			}
		}
	}

	// One attachment per free particle, to the nearest anchor in the rest
	// pose. Euclidean distance here stands in for geodesic distance, which
	// is exact only because the rest layout is flat; ties go to the anchor
	// encountered first in pin order.
	for i := range c.particles {
		if c.particles[i].Pinned {
			continue
		}
		best := -1
		bestDist := 0.0
		for _, a := range c.anchors {
			d := c.particles[i].Pos.Sub(c.particles[a].Pos).Length()
			if best == -1 || d < bestDist {
				best = a
				bestDist = d
			}
		}
		if best != -1 {
			c.attachments = append(c.attachments, Attachment{
				Particle: i,
				Anchor:   best,
				MaxDist:  bestDist,
			})
		}
	}
}

func (c *Cloth) addEdge(i, j int) {
	rest := c.particles[i].Pos.Sub(c.particles[j].Pos).Length()
	c.edges = append(c.edges, DistanceConstraint{I: i, J: j, Rest: rest})
}

// Grid returns the build configuration.
func (c *Cloth) Grid() Grid { return c.grid }

// NumParticles returns the particle count.
func (c *Cloth) NumParticles() int { return len(c.particles) }

// Particle returns a copy of the particle at index i.
func (c *Cloth) Particle(i int) Particle { return c.particles[i] }

// Edges returns the distance constraint set. Callers must not modify it.
func (c *Cloth) Edges() []DistanceConstraint { return c.edges }

// Attachments returns the LRA constraint set. Callers must not modify it.
func (c *Cloth) Attachments() []Attachment { return c.attachments }

// Anchors returns the pinned particle indices in pin order.
func (c *Cloth) Anchors() []int { return c.anchors }
