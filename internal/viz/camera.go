package viz

import (
	"math"
	"sort"

	"github.com/nnkgw/long-range-attachments/internal/cloth"
)

// Camera projects world coordinates onto the canvas with simple
// perspective. The cloth hangs around the origin, so the camera orbits it
// via the Rot* angles.
type Camera struct {
	Dist             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

// NewCamera frames a hanging cloth with a slight downward pitch.
func NewCamera() *Camera {
	return &Camera{Dist: 3.5, RotX: -15 * math.Pi / 180, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotate(p cloth.Vec3) cloth.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project maps a world point to sub-pixel canvas coordinates. The boolean
// reports whether the point lands on the canvas.
func (c *Camera) Project(p cloth.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.rotate(p).Scale(c.Zoom)
	if rot.Z >= c.Dist-0.01 {
		return 0, 0, 0, false
	}
	persp := c.Dist / (c.Dist - rot.Z)
	minDim := math.Min(float64(sw), float64(sh))
	scale := minDim / 2.2
	sx := int(rot.X*persp*scale) + sw/2
	sy := sh/2 - int(rot.Y*persp*scale)
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type edge struct {
	a, b  cloth.Vec3
	depth float64
}

// Wireframe accumulates world-space segments for one frame.
type Wireframe struct {
	edges []edge
}

func (w *Wireframe) Add(a, b cloth.Vec3) { w.edges = append(w.edges, edge{a: a, b: b}) }
func (w *Wireframe) Clear()              { w.edges = w.edges[:0] }

// Render projects and draws the wireframe back-to-front.
func (w *Wireframe) Render(c *Canvas, cam *Camera) {
	sw, sh := c.Width*2, c.Height*4
	type projected struct {
		x1, y1, x2, y2 int
		depth          float64
	}
	proj := make([]projected, 0, len(w.edges))
	for _, e := range w.edges {
		x1, y1, d1, v1 := cam.Project(e.a, sw, sh)
		x2, y2, d2, v2 := cam.Project(e.b, sw, sh)
		if v1 || v2 {
			proj = append(proj, projected{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.Line(e.x1, e.y1, e.x2, e.y2)
		}
	}
}

// ClothWireframe builds the frame's segments from a snapshot: every
// structural edge, a small cross at each anchor, plus attachment lines when
// requested. Positions are recentered so the cloth hangs around the origin.
func ClothWireframe(w *Wireframe, s cloth.Snapshot, showAttachments bool) {
	w.Clear()
	center := boundsCenter(s.Positions)
	for _, e := range s.Edges {
		w.Add(s.Positions[e[0]].Sub(center), s.Positions[e[1]].Sub(center))
	}
	r := anchorMarkSize(s.Positions)
	for _, a := range s.Anchors {
		p := s.Positions[a].Sub(center)
		w.Add(p.Add(cloth.Vec3{X: -r}), p.Add(cloth.Vec3{X: r}))
		w.Add(p.Add(cloth.Vec3{Y: -r}), p.Add(cloth.Vec3{Y: r}))
	}
	if showAttachments {
		for _, a := range s.Attached {
			w.Add(s.Positions[a[0]].Sub(center), s.Positions[a[1]].Sub(center))
		}
	}
}

func anchorMarkSize(ps []cloth.Vec3) float64 {
	if len(ps) == 0 {
		return 0
	}
	lo, hi := ps[0], ps[0]
	for _, p := range ps {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	ext := math.Max(hi.X-lo.X, hi.Y-lo.Y)
	return ext * 0.02
}

func boundsCenter(ps []cloth.Vec3) cloth.Vec3 {
	if len(ps) == 0 {
		return cloth.Vec3{}
	}
	lo, hi := ps[0], ps[0]
	for _, p := range ps {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		lo.Z = math.Min(lo.Z, p.Z)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
		hi.Z = math.Max(hi.Z, p.Z)
	}
	return lo.Add(hi).Scale(0.5)
}
