// Package export renders cloth snapshots to SVG.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/nnkgw/long-range-attachments/internal/cloth"
	"github.com/nnkgw/long-range-attachments/internal/viz"
)

// SnapshotSVG draws a snapshot as a wireframe: structural edges as light
// lines, attachment lines faint green, free particles as small dots,
// anchors as red circles. The view is an orthographic x/y projection fitted
// to the given image size.
func SnapshotSVG(s cloth.Snapshot, width, height int) string {
	if len(s.Positions) == 0 {
		return ""
	}

	minX, maxX := s.Positions[0].X, s.Positions[0].X
	minY, maxY := s.Positions[0].Y, s.Positions[0].Y
	for _, p := range s.Positions {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	pad := 0.05
	minX -= rangeX * pad
	minY -= rangeY * pad
	rangeX *= 1 + 2*pad
	rangeY *= 1 + 2*pad

	px := func(p cloth.Vec3) (float64, float64) {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		return x, y
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#333"/>
`, width, height, width, height))

	sb.WriteString(`<g stroke="#3c6" stroke-width="0.5" opacity="0.25">` + "\n")
	for _, a := range s.Attached {
		x1, y1 := px(s.Positions[a[0]])
		x2, y2 := px(s.Positions[a[1]])
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x1, y1, x2, y2))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(`<g stroke="#ccd" stroke-width="1">` + "\n")
	for _, e := range s.Edges {
		x1, y1 := px(s.Positions[e[0]])
		x2, y2 := px(s.Positions[e[1]])
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", x1, y1, x2, y2))
	}
	sb.WriteString("</g>\n")

	for i, p := range s.Positions {
		x, y := px(p)
		if s.Pinned[i] {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="#e33"/>`+"\n", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="1" fill="#36e"/>`+"\n", x, y))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasSVG dumps a braille canvas as one small circle per lit sub-pixel,
// scaled up by the given factor.
func CanvasSVG(c *viz.Canvas, scale int) string {
	if scale < 1 {
		scale = 1
	}
	pw, ph := c.Width*2, c.Height*4
	w, h := pw*scale, ph*scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#333"/>
`, w, h, w, h))

	r := float64(scale) * 0.45
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if !c.Dot(x, y) {
				continue
			}
			cx := float64(x*scale) + float64(scale)/2
			cy := float64(y*scale) + float64(scale)/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#ccd"/>`+"\n", cx, cy, r))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
