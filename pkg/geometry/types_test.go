package geometry

import (
	"math"
	"testing"
)

func TestSnapToQuantizesToGrid(t *testing.T) {
	got := SnapTo(Point2D{X: 1.23, Y: -0.74}, 0.5)
	want := Point2D{X: 1.0, Y: -0.5}
	if got != want {
		t.Fatalf("SnapTo = %+v, want %+v", got, want)
	}
}

func TestSnapToIdempotent(t *testing.T) {
	pts := []Point2D{
		{X: 0.26, Y: 0.24},
		{X: -3.1, Y: 7.75},
		{X: 0, Y: 0},
		{X: 1e6 + 0.3, Y: -1e6 - 0.3},
	}
	for _, p := range pts {
		once := SnapTo(p, 0.5)
		twice := SnapTo(once, 0.5)
		if once != twice {
			t.Errorf("snap not idempotent for %+v: %+v vs %+v", p, once, twice)
		}
	}
}

func TestSnapToZeroGridPassthrough(t *testing.T) {
	p := Point2D{X: 1.234, Y: 5.678}
	if got := SnapTo(p, 0); got != p {
		t.Fatalf("SnapTo with zero grid = %+v, want %+v", got, p)
	}
}

func TestRound3(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{5.0, 5.0},
		{1.23456, 1.235},
		{-1.23456, -1.235},
		{0.0005, 0.001},
	}
	for _, c := range cases {
		if got := Round3(c.in); got != c.want {
			t.Errorf("Round3(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestQuadBezierEndpoints(t *testing.T) {
	p0 := Point2D{X: 0, Y: 0}
	c := Point2D{X: 5, Y: 10}
	p1 := Point2D{X: 10, Y: 0}

	if got := QuadBezier(p0, c, p1, 0); got != p0 {
		t.Fatalf("t=0 gave %+v, want %+v", got, p0)
	}
	if got := QuadBezier(p0, c, p1, 1); got != p1 {
		t.Fatalf("t=1 gave %+v, want %+v", got, p1)
	}
	mid := QuadBezier(p0, c, p1, 0.5)
	if mid.X != 5 || mid.Y != 5 {
		t.Fatalf("t=0.5 gave %+v, want (5,5)", mid)
	}
}

func TestAffineInverseRoundTrip(t *testing.T) {
	tr := Translation(12, -7).Compose(Scaling(2.5, 0.4))
	inv, ok := tr.Inverse()
	if !ok {
		t.Fatal("expected invertible transform")
	}
	p := Point2D{X: 3.7, Y: -1.2}
	back := inv.Apply(tr.Apply(p))
	if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
		t.Fatalf("round trip gave %+v, want %+v", back, p)
	}
}

func TestAffineSingularInverse(t *testing.T) {
	if _, ok := Scaling(0, 1).Inverse(); ok {
		t.Fatal("expected singular transform to report no inverse")
	}
}

func TestBoundingBox(t *testing.T) {
	pts := []Point2D{{X: 1, Y: 5}, {X: -2, Y: 3}, {X: 4, Y: -1}}
	got := BoundingBox(pts)
	want := Rect{X: -2, Y: -1, Width: 6, Height: 6}
	if got != want {
		t.Fatalf("BoundingBox = %+v, want %+v", got, want)
	}
}

func TestRectUnionContains(t *testing.T) {
	a := NewRect(0, 0, 2, 2)
	b := NewRect(5, 5, 1, 1)
	u := a.Union(b)
	if !u.Contains(Point2D{X: 0, Y: 0}) || !u.Contains(Point2D{X: 6, Y: 6}) {
		t.Fatalf("union %+v does not cover both inputs", u)
	}
}
