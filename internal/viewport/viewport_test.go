package viewport

import (
	"math"
	"testing"

	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/geometry"
)

func rectsClose(a, b geometry.Rect, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol &&
		math.Abs(a.Width-b.Width) < tol && math.Abs(a.Height-b.Height) < tol
}

func TestZoomRoundTrip(t *testing.T) {
	c := NewController(geometry.NewRect(0, 0, 100, 80))
	before := c.View()
	c.Zoom(1.2)
	c.Zoom(1 / 1.2)
	if !rectsClose(c.View(), before, 1e-9) {
		t.Fatalf("zoom round trip: %+v, want %+v", c.View(), before)
	}
}

func TestZoomKeepsCenter(t *testing.T) {
	c := NewController(geometry.NewRect(10, 20, 100, 50))
	before := c.View().Center()
	c.Zoom(1.2)
	after := c.View().Center()
	if math.Abs(before.X-after.X) > 1e-9 || math.Abs(before.Y-after.Y) > 1e-9 {
		t.Fatalf("zoom moved center from %+v to %+v", before, after)
	}
	if got := c.View().Width; math.Abs(got-100/1.2) > 1e-9 {
		t.Fatalf("zoomed width = %v, want %v", got, 100/1.2)
	}
}

func TestZoomZeroFactorIgnored(t *testing.T) {
	c := NewController(geometry.NewRect(0, 0, 100, 100))
	before := c.View()
	c.Zoom(0)
	if c.View() != before {
		t.Fatal("zero zoom factor must not change the viewport")
	}
}

func TestPanLinearity(t *testing.T) {
	c := NewController(geometry.NewRect(0, 0, 100, 100))
	before := c.View()
	c.Pan(37, -12, 800, 600)
	c.Pan(-37, 12, 800, 600)
	if c.View() != before {
		t.Fatalf("pan round trip: %+v, want %+v", c.View(), before)
	}
}

func TestPanDirection(t *testing.T) {
	c := NewController(geometry.NewRect(0, 0, 100, 100))
	// Dragging right moves content right, so the viewport shifts left.
	c.Pan(80, 0, 800, 600)
	if c.View().X != -10 {
		t.Fatalf("viewport X = %v, want -10", c.View().X)
	}
}

func TestResetToFit(t *testing.T) {
	bounds := geometry.NewRect(-5, -5, 60, 40)
	c := NewController(bounds)
	c.Zoom(1.2)
	c.Pan(50, 50, 400, 300)
	c.ResetToFit()
	if c.View() != bounds {
		t.Fatalf("reset gave %+v, want %+v", c.View(), bounds)
	}
}

func TestSetDocumentBoundsResets(t *testing.T) {
	c := NewController(geometry.NewRect(0, 0, 100, 100))
	c.Zoom(2)
	next := geometry.NewRect(0, 0, 300, 200)
	c.SetDocumentBounds(next)
	if c.View() != next {
		t.Fatalf("view = %+v, want %+v", c.View(), next)
	}
}

func TestScreenToWorld(t *testing.T) {
	m := NewMapper()
	view := geometry.NewRect(10, 20, 100, 50)
	got := m.ScreenToWorld(geometry.Point2D{X: 400, Y: 300}, view, 800, 600)
	want := geometry.Point2D{X: 60, Y: 45}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Fatalf("ScreenToWorld = %+v, want %+v", got, want)
	}
}

func TestWorldToScreenInverse(t *testing.T) {
	m := NewMapper()
	view := geometry.NewRect(-3, 7, 42, 17)
	world := geometry.Point2D{X: 12.5, Y: 11.25}
	screen := m.WorldToScreen(world, view, 1024, 768)
	back := m.ScreenToWorld(screen, view, 1024, 768)
	if math.Abs(back.X-world.X) > 1e-9 || math.Abs(back.Y-world.Y) > 1e-9 {
		t.Fatalf("inverse mapping gave %+v, want %+v", back, world)
	}
}

func TestMapperSnap(t *testing.T) {
	m := NewMapper()
	p := geometry.Point2D{X: 1.3, Y: 2.6}
	if got := m.Snap(p); got != p {
		t.Fatalf("snap disabled must pass through, got %+v", got)
	}
	m.SnapEnabled = true
	want := geometry.Point2D{X: 1.5, Y: 2.5}
	if got := m.Snap(p); got != want {
		t.Fatalf("snap = %+v, want %+v", got, want)
	}
	if got := m.Snap(m.Snap(p)); got != want {
		t.Fatalf("snap not idempotent: %+v", got)
	}
}
