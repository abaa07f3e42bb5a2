// Package annotate defines the user-drawn annotation shapes and measurements
// layered over a generated drawing. Shapes are scoped to one drawing session:
// they are owned by the history's current frame and cleared when a new base
// document arrives.
package annotate

import (
	"image/color"

	"github.com/google/uuid"

	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/geometry"
)

// Shape is one user-drawn annotation. Implementations are value-like: Clone
// returns an independent copy so history snapshots never share state.
type Shape interface {
	// ID returns the shape's stable identifier.
	ID() string
	// Clone returns a deep copy of the shape.
	Clone() Shape
	// BoundingBox returns the shape's extent in world coordinates.
	BoundingBox() geometry.Rect
}

// NewID allocates a stable shape identifier.
func NewID() string {
	return uuid.NewString()
}

// Rect is an axis-aligned rectangle annotation. Width and height are always
// non-negative; gestures that drag up or left reposition the origin instead.
type Rect struct {
	Ident string
	X, Y  float64
	W, H  float64
	Color color.RGBA
}

func (r *Rect) ID() string { return r.Ident }

func (r *Rect) Clone() Shape {
	c := *r
	return &c
}

func (r *Rect) BoundingBox() geometry.Rect {
	return geometry.NewRect(r.X, r.Y, r.W, r.H)
}

// Circle is a circle annotation anchored at its center.
type Circle struct {
	Ident  string
	CX, CY float64
	R      float64
	Color  color.RGBA
}

func (c *Circle) ID() string { return c.Ident }

func (c *Circle) Clone() Shape {
	cp := *c
	return &cp
}

func (c *Circle) BoundingBox() geometry.Rect {
	return geometry.NewRect(c.CX-c.R, c.CY-c.R, 2*c.R, 2*c.R)
}

// Polyline is an open annotation path through an ordered vertex sequence.
type Polyline struct {
	Ident  string
	Points []geometry.Point2D
	Color  color.RGBA
}

func (p *Polyline) ID() string { return p.Ident }

func (p *Polyline) Clone() Shape {
	cp := *p
	cp.Points = append([]geometry.Point2D(nil), p.Points...)
	return &cp
}

func (p *Polyline) BoundingBox() geometry.Rect {
	return geometry.BoundingBox(p.Points)
}

// Length returns the total path length in world units.
func (p *Polyline) Length() float64 {
	var total float64
	for i := 1; i < len(p.Points); i++ {
		total += p.Points[i-1].Distance(p.Points[i])
	}
	return total
}

// Arc is a quadratic curve annotation: endpoints P1, P2 bowed by Control.
type Arc struct {
	Ident   string
	P1, P2  geometry.Point2D
	Control geometry.Point2D
	Color   color.RGBA
}

func (a *Arc) ID() string { return a.Ident }

func (a *Arc) Clone() Shape {
	c := *a
	return &c
}

func (a *Arc) BoundingBox() geometry.Rect {
	// Control point included: conservative box, good enough for highlights.
	return geometry.BoundingBox([]geometry.Point2D{a.P1, a.P2, a.Control})
}

// CloneShapes deep-copies a shape list for a history snapshot.
func CloneShapes(shapes []Shape) []Shape {
	if shapes == nil {
		return nil
	}
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Clone()
	}
	return out
}

// Measurement is a committed point-to-point distance in world units.
// Immutable once committed; the list is append-only and cleared in bulk only.
type Measurement struct {
	P1, P2   geometry.Point2D
	Distance float64
}

// NewMeasurement computes the Euclidean distance between two points, rounded
// to 3 decimal places.
func NewMeasurement(p1, p2 geometry.Point2D) Measurement {
	return Measurement{
		P1:       p1,
		P2:       p2,
		Distance: geometry.Round3(p1.Distance(p2)),
	}
}
