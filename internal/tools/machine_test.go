package tools

import (
	"math"
	"testing"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/annotate"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/history"
	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/geometry"
)

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

// click simulates a stationary down/up pair at the same position.
func click(m *Machine, screen, world geometry.Point2D) {
	m.PointerDown(screen, world)
	m.PointerUp(screen, world)
}

func TestRectDragCommits(t *testing.T) {
	h := history.New()
	m := NewMachine(h)
	m.SetTool(ToolDrawRect)

	m.PointerDown(pt(100, 100), pt(10, 10))
	m.PointerMove(pt(140, 130), pt(14, 13))
	if m.PendingShape() == nil {
		t.Fatal("expected pending rectangle during drag")
	}
	m.PointerUp(pt(140, 130), pt(14, 13))

	shapes := h.Current()
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(shapes))
	}
	r, ok := shapes[0].(*annotate.Rect)
	if !ok {
		t.Fatalf("got %T, want *annotate.Rect", shapes[0])
	}
	if r.X != 10 || r.Y != 10 || r.W != 4 || r.H != 3 {
		t.Fatalf("got rect (%v,%v,%v,%v), want (10,10,4,3)", r.X, r.Y, r.W, r.H)
	}
	if m.PendingShape() != nil {
		t.Fatal("pending shape should clear after commit")
	}
}

func TestRectReverseDragNormalizes(t *testing.T) {
	h := history.New()
	m := NewMachine(h)
	m.SetTool(ToolDrawRect)

	m.PointerDown(pt(140, 130), pt(14, 13))
	m.PointerMove(pt(100, 100), pt(10, 10))
	m.PointerUp(pt(100, 100), pt(10, 10))

	r := h.Current()[0].(*annotate.Rect)
	if r.X != 10 || r.Y != 10 || r.W != 4 || r.H != 3 {
		t.Fatalf("got rect (%v,%v,%v,%v), want normalized (10,10,4,3)", r.X, r.Y, r.W, r.H)
	}
}

func TestDegenerateShapesDiscarded(t *testing.T) {
	h := history.New()
	m := NewMachine(h)

	m.SetTool(ToolDrawRect)
	click(m, pt(100, 100), pt(10, 10))
	if len(h.Current()) != 0 {
		t.Fatal("zero-size rect should be discarded")
	}
	if h.CanUndo() {
		t.Fatal("discarded rect must not push a history frame")
	}

	m.SetTool(ToolDrawCircle)
	click(m, pt(100, 100), pt(10, 10))
	if len(h.Current()) != 0 {
		t.Fatal("zero-radius circle should be discarded")
	}
}

func TestCircleDragRadius(t *testing.T) {
	h := history.New()
	m := NewMachine(h)
	m.SetTool(ToolDrawCircle)

	m.PointerDown(pt(100, 100), pt(10, 10))
	m.PointerMove(pt(130, 140), pt(13, 14))
	m.PointerUp(pt(130, 140), pt(13, 14))

	c := h.Current()[0].(*annotate.Circle)
	if c.CX != 10 || c.CY != 10 {
		t.Fatalf("got center (%v,%v), want (10,10)", c.CX, c.CY)
	}
	if math.Abs(c.R-5) > 1e-9 {
		t.Fatalf("got radius %v, want 5", c.R)
	}
}

func TestSelectClickVersusPan(t *testing.T) {
	h := history.New()
	m := NewMachine(h)

	var clicked []geometry.Point2D
	var panDX, panDY float64
	m.OnSelectClick(func(w geometry.Point2D) { clicked = append(clicked, w) })
	m.OnPan(func(dx, dy float64) { panDX += dx; panDY += dy })

	// Within the threshold: a click, no pan.
	m.PointerDown(pt(100, 100), pt(10, 10))
	m.PointerMove(pt(103, 102), pt(10.3, 10.2))
	m.PointerUp(pt(103, 102), pt(10.3, 10.2))
	if len(clicked) != 1 {
		t.Fatalf("got %d clicks, want 1", len(clicked))
	}
	if panDX != 0 || panDY != 0 {
		t.Fatalf("got pan (%v,%v), want none", panDX, panDY)
	}

	// Beyond the threshold: a pan, no click.
	m.PointerDown(pt(100, 100), pt(10, 10))
	m.PointerMove(pt(120, 100), pt(12, 10))
	m.PointerMove(pt(150, 110), pt(15, 11))
	m.PointerUp(pt(150, 110), pt(15, 11))
	if len(clicked) != 1 {
		t.Fatalf("got %d clicks after pan, want still 1", len(clicked))
	}
	if panDX != 50 || panDY != 10 {
		t.Fatalf("got accumulated pan (%v,%v), want (50,10)", panDX, panDY)
	}
}

func TestMeasureTwoClicks(t *testing.T) {
	h := history.New()
	m := NewMachine(h)
	m.SetTool(ToolMeasure)

	var got []annotate.Measurement
	m.OnMeasure(func(meas annotate.Measurement) { got = append(got, meas) })

	click(m, pt(0, 0), pt(0, 0))
	if _, _, ok := m.MeasurePreview(); !ok {
		t.Fatal("expected live preview after first click")
	}
	click(m, pt(0, 0), pt(3, 4))

	if len(got) != 1 {
		t.Fatalf("got %d measurements, want 1", len(got))
	}
	if got[0].Distance != 5 {
		t.Fatalf("got distance %v, want 5", got[0].Distance)
	}
	if _, _, ok := m.MeasurePreview(); ok {
		t.Fatal("preview should clear after second click")
	}
}

func TestMeasureBelowThresholdDiscarded(t *testing.T) {
	h := history.New()
	m := NewMachine(h)
	m.SetTool(ToolMeasure)

	var count int
	m.OnMeasure(func(annotate.Measurement) { count++ })

	click(m, pt(0, 0), pt(5, 5))
	click(m, pt(0, 0), pt(5.005, 5))
	if count != 0 {
		t.Fatalf("got %d measurements, want 0 for near-zero distance", count)
	}
	if _, _, ok := m.MeasurePreview(); ok {
		t.Fatal("start point must clear even when the measurement is discarded")
	}
}

func TestPolylineClicksAndDoubleClick(t *testing.T) {
	h := history.New()
	m := NewMachine(h)
	m.SetTool(ToolDrawPolyline)

	click(m, pt(0, 0), pt(0, 0))
	m.PointerMove(pt(0, 0), pt(5, 1))
	click(m, pt(0, 0), pt(10, 0))
	click(m, pt(0, 0), pt(10, 10))
	m.DoubleClick(pt(10, 10))

	shapes := h.Current()
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(shapes))
	}
	p := shapes[0].(*annotate.Polyline)
	want := []geometry.Point2D{pt(0, 0), pt(10, 0), pt(10, 10)}
	if len(p.Points) != len(want) {
		t.Fatalf("got %d vertices, want %d", len(p.Points), len(want))
	}
	for i := range want {
		if p.Points[i] != want[i] {
			t.Fatalf("vertex %d: got %v, want %v", i, p.Points[i], want[i])
		}
	}
	if p.Length() != 20 {
		t.Fatalf("got length %v, want 20", p.Length())
	}
}

func TestPolylineSingleVertexNotCommitted(t *testing.T) {
	h := history.New()
	m := NewMachine(h)
	m.SetTool(ToolDrawPolyline)

	click(m, pt(0, 0), pt(0, 0))
	m.DoubleClick(pt(0, 0))
	if len(h.Current()) != 0 {
		t.Fatal("single-vertex polyline should be discarded")
	}
	if m.PendingShape() != nil {
		t.Fatal("polyline state should clear after double click")
	}
}

func TestArcThreeClicks(t *testing.T) {
	h := history.New()
	m := NewMachine(h)
	m.SetTool(ToolDrawArc)

	click(m, pt(0, 0), pt(0, 0))
	click(m, pt(0, 0), pt(10, 0))

	// Until the third click the control point defaults to the chord midpoint.
	preview, ok := m.PendingShape().(*annotate.Arc)
	if !ok {
		t.Fatal("expected arc preview after second click")
	}
	if preview.Control != pt(5, 0) {
		t.Fatalf("got preview control %v, want chord midpoint (5,0)", preview.Control)
	}

	click(m, pt(0, 0), pt(5, 8))

	shapes := h.Current()
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(shapes))
	}
	a := shapes[0].(*annotate.Arc)
	if a.P1 != pt(0, 0) || a.P2 != pt(10, 0) || a.Control != pt(5, 8) {
		t.Fatalf("got arc %v %v control %v", a.P1, a.P2, a.Control)
	}
	if m.PendingShape() != nil {
		t.Fatal("arc state should return to idle after commit")
	}
}

func TestToolSwitchDiscardsInProgress(t *testing.T) {
	h := history.New()
	m := NewMachine(h)
	m.SetTool(ToolDrawPolyline)
	click(m, pt(0, 0), pt(0, 0))
	click(m, pt(0, 0), pt(10, 0))

	m.SetTool(ToolSelect)
	if m.PendingShape() != nil {
		t.Fatal("switching tools should discard the pending polyline")
	}
	if len(h.Current()) != 0 || h.CanUndo() {
		t.Fatal("an abandoned gesture must not touch history")
	}
}

func TestSubmitDetailQuery(t *testing.T) {
	h := history.New()
	m := NewMachine(h)
	m.SetTool(ToolDetailQuery)

	var got string
	m.OnDetail(func(id string) { got = id })

	if m.SubmitDetailQuery("   ") {
		t.Fatal("blank query should be rejected")
	}
	if m.ActiveTool() != ToolDetailQuery {
		t.Fatal("rejected query should not switch tools")
	}
	if !m.SubmitDetailQuery("  beam-3  ") {
		t.Fatal("expected query to be accepted")
	}
	if got != "beam-3" {
		t.Fatalf("got %q, want trimmed %q", got, "beam-3")
	}
	if m.ActiveTool() != ToolSelect {
		t.Fatalf("got tool %v after submit, want Select", m.ActiveTool())
	}
}
