package viz

import (
	"strings"
	"testing"

	"github.com/nnkgw/long-range-attachments/internal/cloth"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	if c.At(0, 0) == 0x2800 {
		t.Error("expected dot at (0,0)")
	}

	// Out of range is ignored, not a panic.
	c.Set(-1, 0)
	c.Set(100, 100)

	c.Clear()
	if c.At(0, 0) != 0x2800 {
		t.Error("clear should empty every cell")
	}
}

func TestCanvasLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Line(0, 0, 19, 39)

	if c.At(0, 0) == 0x2800 {
		t.Error("line start not drawn")
	}
	if c.At(9, 9) == 0x2800 {
		t.Error("line end not drawn")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	s := c.String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 3 {
			t.Errorf("expected 3 cells per row, got %d", len([]rune(line)))
		}
	}
}

func TestCameraProjectsOriginToCenter(t *testing.T) {
	cam := &Camera{Dist: 3.5, Zoom: 1}
	x, y, _, ok := cam.Project(cloth.Vec3{}, 100, 100)
	if !ok {
		t.Fatal("origin should be visible")
	}
	if x != 50 || y != 50 {
		t.Errorf("origin should project to center, got (%d,%d)", x, y)
	}
}

func TestCameraZoomBounds(t *testing.T) {
	cam := NewCamera()
	for i := 0; i < 50; i++ {
		cam.ZoomIn()
	}
	if cam.Zoom > 10 {
		t.Errorf("zoom should cap at 10, got %f", cam.Zoom)
	}
	for i := 0; i < 100; i++ {
		cam.ZoomOut()
	}
	if cam.Zoom < 0.1 {
		t.Errorf("zoom should floor at 0.1, got %f", cam.Zoom)
	}
}

func TestClothWireframeEdgeCount(t *testing.T) {
	c := cloth.New(cloth.Grid{Width: 3, Height: 3, Spacing: 1})
	s := c.Snapshot()

	// 12 structural edges plus a 2-segment cross per anchor.
	var w Wireframe
	ClothWireframe(&w, s, false)
	base := 12 + 2*len(s.Anchors)
	if len(w.edges) != base {
		t.Errorf("expected %d segments, got %d", base, len(w.edges))
	}

	ClothWireframe(&w, s, true)
	want := base + len(s.Attached)
	if len(w.edges) != want {
		t.Errorf("expected %d segments with attachments, got %d", want, len(w.edges))
	}
}

func TestWireframeRenderDrawsSomething(t *testing.T) {
	c := cloth.New(cloth.Grid{Width: 5, Height: 5, Spacing: 0.2})
	canvas := NewCanvas(40, 20)

	var w Wireframe
	ClothWireframe(&w, c.Snapshot(), false)
	w.Render(canvas, NewCamera())

	lit := 0
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			if canvas.At(col, row) != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("rendering a cloth should light some cells")
	}
}
