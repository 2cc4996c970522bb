package export

import (
	"strings"
	"testing"

	"github.com/nnkgw/long-range-attachments/internal/cloth"
	"github.com/nnkgw/long-range-attachments/internal/viz"
)

func TestSnapshotSVG(t *testing.T) {
	c := cloth.New(cloth.Grid{Width: 3, Height: 3, Spacing: 1})
	svg := SnapshotSVG(c.Snapshot(), 400, 400)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing xml header")
	}
	if !strings.Contains(svg, "</svg>") {
		t.Error("unterminated svg")
	}

	// 12 structural edges + 7 attachment lines (two top corners pinned).
	if n := strings.Count(svg, "<line "); n != 19 {
		t.Errorf("expected 19 lines, got %d", n)
	}
	// 2 anchors drawn as r=3 circles, 7 free particles as r=1.
	if n := strings.Count(svg, `r="3"`); n != 2 {
		t.Errorf("expected 2 anchor circles, got %d", n)
	}
	if n := strings.Count(svg, `r="1"`); n != 7 {
		t.Errorf("expected 7 particle dots, got %d", n)
	}
}

func TestSnapshotSVGEmpty(t *testing.T) {
	if SnapshotSVG(cloth.Snapshot{}, 100, 100) != "" {
		t.Error("empty snapshot should produce no output")
	}
}

func TestCanvasSVG(t *testing.T) {
	c := viz.NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(3, 5)

	svg := CanvasSVG(c, 10)
	if !strings.Contains(svg, `width="80" height="80"`) {
		t.Error("wrong scaled dimensions")
	}
	if n := strings.Count(svg, "<circle "); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}

	if n := strings.Count(CanvasSVG(viz.NewCanvas(4, 2), 10), "<circle "); n != 0 {
		t.Errorf("empty canvas should have no dots, got %d", n)
	}
}
